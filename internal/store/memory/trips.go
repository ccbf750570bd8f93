package memory

import (
	"context"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

type tripView struct{ s *Store }

func (v *tripView) Create(_ context.Context, t *models.Trip) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.trips {
		if models.IsTerminalStatus(existing.Status) {
			continue
		}
		if existing.VehicleID == t.VehicleID {
			return apperrors.Conflict(apperrors.ReasonDoubleBooked,
				"vehicle already has a scheduled or active trip")
		}
		if existing.DriverID == t.DriverID {
			return apperrors.Conflict(apperrors.ReasonDoubleBooked,
				"driver already has a scheduled or active trip")
		}
	}
	t.ID = s.allocID()
	t.Status = models.TripScheduled
	t.Version = 1
	stored := *t
	stored.Passengers = nil
	s.trips[t.ID] = stored
	return nil
}

// copy of the trip with its manifest; caller must hold at least mu.RLock.
func (v *tripView) snapshot(id uint) models.Trip {
	t := v.s.trips[id]
	manifest := v.s.passengers[id]
	t.Passengers = make([]models.Passenger, len(manifest))
	copy(t.Passengers, manifest)
	return t
}

func (v *tripView) GetByID(_ context.Context, id uint) (*models.Trip, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.trips[id]; !ok {
		return nil, apperrors.NotFound("trip", id)
	}
	t := v.snapshot(id)
	return &t, nil
}

func (v *tripView) ListByOwner(_ context.Context, ownerID uint) ([]models.Trip, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Trip{}
	for id, t := range s.trips {
		if t.OwnerID == ownerID {
			out = append(out, v.snapshot(id))
		}
	}
	return out, nil
}

func (v *tripView) ListAll(_ context.Context) ([]models.Trip, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Trip{}
	for id := range s.trips {
		out = append(out, v.snapshot(id))
	}
	return out, nil
}

func (v *tripView) UpdateStatus(_ context.Context, id uint, from, to string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return apperrors.NotFound("trip", id)
	}
	if t.Status != from {
		return store.ErrVersionConflict
	}
	t.Status = to
	t.Version++
	s.trips[id] = t
	return nil
}

func (v *tripView) AddPassenger(_ context.Context, tripID uint, p *models.Passenger) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[tripID]
	if !ok {
		return apperrors.NotFound("trip", tripID)
	}
	if models.IsTerminalStatus(t.Status) {
		return apperrors.Conflict(apperrors.ReasonTripClosed, "trip is no longer open")
	}
	// capacity must be read under the same lock the append holds, or a
	// concurrent capacity shrink could slip between the check and the write
	veh, ok := s.vehicles[t.VehicleID]
	if !ok {
		return apperrors.NotFound("vehicle", t.VehicleID)
	}
	if len(s.passengers[tripID])+1 > veh.Capacity {
		return apperrors.Conflict(apperrors.ReasonCapacityExceeded, "manifest is at vehicle capacity")
	}
	p.ID = s.allocID()
	p.TripID = tripID
	s.passengers[tripID] = append(s.passengers[tripID], *p)
	t.Version++
	s.trips[tripID] = t
	return nil
}

func (v *tripView) RemovePassenger(_ context.Context, tripID, passengerID uint) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[tripID]
	if !ok {
		return apperrors.NotFound("trip", tripID)
	}
	if models.IsTerminalStatus(t.Status) {
		return apperrors.Conflict(apperrors.ReasonTripClosed, "trip is no longer open")
	}
	manifest := s.passengers[tripID]
	for i, p := range manifest {
		if p.ID == passengerID {
			s.passengers[tripID] = append(manifest[:i:i], manifest[i+1:]...)
			t.Version++
			s.trips[tripID] = t
			return nil
		}
	}
	return apperrors.NotFound("passenger", passengerID)
}
