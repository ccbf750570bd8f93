package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"fleet_tracker/internal/models"
)

type QueryServiceSuite struct {
	suite.Suite
	f *fixture
}

func TestQueryServiceSuite(t *testing.T) {
	suite.Run(t, new(QueryServiceSuite))
}

func (s *QueryServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
}

// seedTrips registers one trip per owner:
// owner1: MH12AB1234 / Ram Kumar at 10:30, owner2: MH14CD5678 / Shyam Singh at 11:30.
func (s *QueryServiceSuite) seedTrips() (t1, t2 *models.Trip) {
	v1 := s.f.mustVehicle(s.T(), s.f.owner1, "MH12AB1234", 4)
	d1 := s.f.mustDriver(s.T(), s.f.owner1, "Ram Kumar", "DL123456789")
	t1 = s.f.mustTrip(s.T(), s.f.owner1, v1.ID, d1.ID, testTime(10))

	v2 := s.f.mustVehicle(s.T(), s.f.owner2, "MH14CD5678", 32)
	d2 := s.f.mustDriver(s.T(), s.f.owner2, "Shyam Singh", "DL987654321")
	t2 = s.f.mustTrip(s.T(), s.f.owner2, v2.ID, d2.ID, testTime(11))
	return t1, t2
}

func (s *QueryServiceSuite) TestRoleIsolation() {
	t1, t2 := s.seedTrips()

	s.Run("police see every operator's trips", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.officer, "")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(t1.ID, got[0].TripID)
		s.Equal(t2.ID, got[1].TripID)
	})

	s.Run("owners see only their own", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.owner1, "")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(t1.ID, got[0].TripID)
		s.Equal("John Doe", got[0].OwnerName)
	})

	s.Run("matching filter does not leak across owners", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.owner2, "MH12")
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *QueryServiceSuite) TestFilterMatching() {
	s.seedTrips()

	s.Run("matches plate case-insensitively", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.officer, "mh12")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("MH12AB1234", got[0].PlateNumber)
	})

	s.Run("matches driver name", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.officer, "shyam")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("Shyam Singh", got[0].DriverName)
	})

	s.Run("matches owner name", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.officer, "abc transport")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("ABC Transport Co", got[0].OwnerName)
	})

	s.Run("no match means empty, not error", func() {
		got, err := s.f.query.Search(s.f.ctx, s.f.officer, "zzz")
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *QueryServiceSuite) TestOrderingAndPaging() {
	// second trip scheduled earlier than the first must sort first
	v1 := s.f.mustVehicle(s.T(), s.f.owner1, "MH12AB1234", 4)
	d1 := s.f.mustDriver(s.T(), s.f.owner1, "Ram Kumar", "DL123456789")
	late := s.f.mustTrip(s.T(), s.f.owner1, v1.ID, d1.ID, testTime(15))

	v2 := s.f.mustVehicle(s.T(), s.f.owner1, "MH14CD5678", 32)
	d2 := s.f.mustDriver(s.T(), s.f.owner1, "Shyam Singh", "DL987654321")
	early := s.f.mustTrip(s.T(), s.f.owner1, v2.ID, d2.ID, testTime(9))

	got, err := s.f.query.Search(s.f.ctx, s.f.owner1, "")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(early.ID, got[0].TripID)
	s.Equal(late.ID, got[1].TripID)

	s.Run("repeated searches with no mutation agree", func() {
		again, err := s.f.query.Search(s.f.ctx, s.f.owner1, "")
		s.Require().NoError(err)
		s.Equal(got, again)
	})

	s.Run("offset and limit window the result", func() {
		page, err := s.f.query.SearchPage(s.f.ctx, s.f.owner1, "", 1, 5)
		s.Require().NoError(err)
		s.Require().Len(page, 1)
		s.Equal(late.ID, page[0].TripID)

		page, err = s.f.query.SearchPage(s.f.ctx, s.f.owner1, "", 10, 5)
		s.Require().NoError(err)
		s.Empty(page)
	})
}

func (s *QueryServiceSuite) TestSummariesResolveNamesAndCounts() {
	t1, _ := s.seedTrips()
	_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, t1.ID, "John Doe", "ID1", "1")
	s.Require().NoError(err)
	_, err = s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, t1.ID, "Jane Smith", "ID2", "2")
	s.Require().NoError(err)

	got, err := s.f.query.Search(s.f.ctx, s.f.officer, "MH12")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Ram Kumar", got[0].DriverName)
	s.Equal("John Doe", got[0].OwnerName)
	s.Equal(2, got[0].Passengers)
	s.Equal(models.TripScheduled, got[0].Status)
}

func (s *QueryServiceSuite) TestStats() {
	t1, t2 := s.seedTrips()
	_, err := s.f.manifest.AddPassenger(s.f.ctx, s.f.owner1, t1.ID, "John Doe", "ID1", "1")
	s.Require().NoError(err)

	_, err = s.f.trips.Transition(s.f.ctx, s.f.owner1, t1.ID, models.TripActive)
	s.Require().NoError(err)
	_, err = s.f.trips.Transition(s.f.ctx, s.f.owner2, t2.ID, models.TripActive)
	s.Require().NoError(err)
	_, err = s.f.trips.Transition(s.f.ctx, s.f.owner2, t2.ID, models.TripCompleted)
	s.Require().NoError(err)

	s.Run("owner stats count own fleet and active trips", func() {
		stats, err := s.f.query.OwnerStats(s.f.ctx, s.f.owner1)
		s.Require().NoError(err)
		s.Equal(1, stats.Vehicles)
		s.Equal(1, stats.Drivers)
		s.Equal(1, stats.ActiveTrips)
	})

	s.Run("police stats span all operators", func() {
		stats, err := s.f.query.PoliceStats(s.f.ctx, s.f.officer)
		s.Require().NoError(err)
		s.Equal(1, stats.ActiveTrips)
		s.Equal(1, stats.CompletedTrips)
		s.Equal(1, stats.TotalPassengers)
	})
}
