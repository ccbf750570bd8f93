package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
)

type ManifestServiceSuite struct {
	suite.Suite
	f *fixture
}

func TestManifestServiceSuite(t *testing.T) {
	suite.Run(t, new(ManifestServiceSuite))
}

func (s *ManifestServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func (s *ManifestServiceSuite) openTrip(capacity int) *models.Trip {
	v := s.f.mustVehicle(s.T(), s.f.owner1, "MH12AB1234", capacity)
	d := s.f.mustDriver(s.T(), s.f.owner1, "Ram Kumar", "DL123456789")
	return s.f.mustTrip(s.T(), s.f.owner1, v.ID, d.ID, testTime(10))
}

func (s *ManifestServiceSuite) TestCapacityBound() {
	trip := s.openTrip(4)

	for i := 1; i <= 4; i++ {
		p, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID,
			fmt.Sprintf("Passenger %d", i), fmt.Sprintf("ID%04d", i), "+91 9000000000")
		s.Require().NoError(err)
		s.NotZero(p.ID)
	}

	_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Fifth", "ID0005", "+91 9000000000")
	s.Equal(apperrors.ReasonCapacityExceeded, apperrors.ConflictReason(err))

	got, err := s.f.trips.GetTrip(s.f.ctx, s.f.owner1, trip.ID)
	s.Require().NoError(err)
	s.Len(got.Passengers, 4)
}

func (s *ManifestServiceSuite) TestRemoveFreesASeat() {
	trip := s.openTrip(2)
	a, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "John Doe", "ID1", "1")
	s.Require().NoError(err)
	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Jane Smith", "ID2", "2")
	s.Require().NoError(err)

	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Alice Johnson", "ID3", "3")
	s.Equal(apperrors.ReasonCapacityExceeded, apperrors.ConflictReason(err))

	s.Require().NoError(s.f.manifest.RemovePassenger(s.f.ctx, s.f.owner1, trip.ID, a.ID))
	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Alice Johnson", "ID3", "3")
	s.NoError(err)
}

// A capacity shrink committed after a trip fills up partway must bind
// every later append; the stale pre-shrink capacity never applies.
func (s *ManifestServiceSuite) TestShrunkCapacityBindsLaterAppends() {
	v := s.f.mustVehicle(s.T(), s.f.owner1, "MH12AB1234", 3)
	d := s.f.mustDriver(s.T(), s.f.owner1, "Ram Kumar", "DL123456789")
	trip := s.f.mustTrip(s.T(), s.f.owner1, v.ID, d.ID, testTime(10))

	_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "John Doe", "ID1", "1")
	s.Require().NoError(err)
	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Jane Smith", "ID2", "2")
	s.Require().NoError(err)

	// shrinking to the manifest's current length is legal
	_, err = s.f.fleet.UpdateVehicle(s.f.ctx, s.f.owner1, v.ID, "MH12AB1234", "car", "Maruti Swift", 2)
	s.Require().NoError(err)

	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Alice Johnson", "ID3", "3")
	s.Equal(apperrors.ReasonCapacityExceeded, apperrors.ConflictReason(err))

	got, err := s.f.trips.GetTrip(s.f.ctx, s.f.owner1, trip.ID)
	s.Require().NoError(err)
	s.Len(got.Passengers, 2)
}

func (s *ManifestServiceSuite) TestValidation() {
	trip := s.openTrip(4)
	cases := []struct {
		name, idProof, phone string
	}{
		{"", "ID1", "1"},
		{"John Doe", "", "1"},
		{"John Doe", "ID1", ""},
	}
	for _, tc := range cases {
		_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, tc.name, tc.idProof, tc.phone)
		s.True(apperrors.IsKind(err, apperrors.KindValidation))
	}
}

func (s *ManifestServiceSuite) TestClosedTripRejectsMutations() {
	trip := s.openTrip(4)
	p, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "John Doe", "ID1", "1")
	s.Require().NoError(err)

	_, err = s.f.trips.Transition(s.f.ctx, s.f.owner1, trip.ID, models.TripActive)
	s.Require().NoError(err)
	_, err = s.f.trips.Transition(s.f.ctx, s.f.owner1, trip.ID, models.TripCompleted)
	s.Require().NoError(err)

	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, trip.ID, "Late", "ID9", "9")
	s.Equal(apperrors.ReasonTripClosed, apperrors.ConflictReason(err))

	err = s.f.manifest.RemovePassenger(s.f.ctx, s.f.owner1, trip.ID, p.ID)
	s.Equal(apperrors.ReasonTripClosed, apperrors.ConflictReason(err))

	// manifest still readable after the freeze
	got, err := s.f.trips.GetTrip(s.f.ctx, s.f.owner1, trip.ID)
	s.Require().NoError(err)
	s.Len(got.Passengers, 1)
}

func (s *ManifestServiceSuite) TestRemoveMissingPassenger() {
	trip := s.openTrip(4)
	err := s.f.manifest.RemovePassenger(s.f.ctx, s.f.owner1, trip.ID, 9999)
	s.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (s *ManifestServiceSuite) TestOtherOwnersTripIsHidden() {
	trip := s.openTrip(4)
	_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner2, trip.ID, "John Doe", "ID1", "1")
	s.True(apperrors.IsKind(err, apperrors.KindNotFound))
}
