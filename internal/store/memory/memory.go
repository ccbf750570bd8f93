// Package memory is the map-backed store used by the test suites and any
// deployment that can live without durability. One mutex serializes all
// mutations, which is what makes the conditional operations atomic here.
package memory

import (
	"context"
	"strings"
	"sync"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

var (
	_ store.UserStore    = (*userView)(nil)
	_ store.VehicleStore = (*vehicleView)(nil)
	_ store.DriverStore  = (*driverView)(nil)
	_ store.TripStore    = (*tripView)(nil)
)

type Store struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	vehicles   map[uint]models.Vehicle
	drivers    map[uint]models.Driver
	trips      map[uint]models.Trip
	passengers map[uint][]models.Passenger // tripID -> manifest, insertion order
	nextID     uint
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uint]models.User),
		vehicles:   make(map[uint]models.Vehicle),
		drivers:    make(map[uint]models.Driver),
		trips:      make(map[uint]models.Trip),
		passengers: make(map[uint][]models.Passenger),
	}
}

// id allocation; caller must hold mu.
func (s *Store) allocID() uint {
	s.nextID++
	return s.nextID
}

// Users, Vehicles, Drivers and Trips expose the per-entity interface
// views over the one shared store, so the cross-entity checks
// (delete-in-use, double-booking) all run under the same lock.
func (s *Store) Users() *userView       { return &userView{s} }
func (s *Store) Vehicles() *vehicleView { return &vehicleView{s} }
func (s *Store) Drivers() *driverView   { return &driverView{s} }
func (s *Store) Trips() *tripView       { return &tripView{s} }

// ---- users ----

type userView struct{ s *Store }

func (v *userView) Create(_ context.Context, u *models.User) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperrors.Duplicate("email")
		}
	}
	u.ID = s.allocID()
	s.users[u.ID] = *u
	return nil
}

func (v *userView) GetByID(_ context.Context, id uint) (*models.User, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return &u, nil
}

func (v *userView) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("user", 0)
}

// ---- vehicles ----

type vehicleView struct{ s *Store }

func (v *vehicleView) Create(_ context.Context, veh *models.Vehicle) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.vehicles {
		if strings.EqualFold(existing.PlateNumber, veh.PlateNumber) {
			return apperrors.Duplicate("plate")
		}
	}
	veh.ID = s.allocID()
	s.vehicles[veh.ID] = *veh
	return nil
}

func (v *vehicleView) GetByID(_ context.Context, id uint) (*models.Vehicle, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	veh, ok := s.vehicles[id]
	if !ok {
		return nil, apperrors.NotFound("vehicle", id)
	}
	return &veh, nil
}

func (v *vehicleView) ListByOwner(_ context.Context, ownerID uint) ([]models.Vehicle, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Vehicle{}
	for _, veh := range s.vehicles {
		if veh.OwnerID == ownerID {
			out = append(out, veh)
		}
	}
	return out, nil
}

func (v *vehicleView) ListAll(_ context.Context) ([]models.Vehicle, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Vehicle{}
	for _, veh := range s.vehicles {
		out = append(out, veh)
	}
	return out, nil
}

func (v *vehicleView) Update(_ context.Context, veh *models.Vehicle) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.vehicles[veh.ID]
	if !ok {
		return apperrors.NotFound("vehicle", veh.ID)
	}
	for id, existing := range s.vehicles {
		if id != veh.ID && strings.EqualFold(existing.PlateNumber, veh.PlateNumber) {
			return apperrors.Duplicate("plate")
		}
	}
	if veh.Capacity < current.Capacity {
		for _, t := range s.trips {
			if t.VehicleID == veh.ID && !models.IsTerminalStatus(t.Status) &&
				len(s.passengers[t.ID]) > veh.Capacity {
				return apperrors.Conflict(apperrors.ReasonInUse,
					"capacity cannot drop below an open trip's manifest")
			}
		}
	}
	s.vehicles[veh.ID] = *veh
	return nil
}

func (v *vehicleView) Delete(_ context.Context, id uint) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return apperrors.NotFound("vehicle", id)
	}
	for _, t := range s.trips {
		if t.VehicleID == id && !models.IsTerminalStatus(t.Status) {
			return apperrors.Conflict(apperrors.ReasonInUse,
				"vehicle is referenced by a scheduled or active trip")
		}
	}
	delete(s.vehicles, id)
	return nil
}

// ---- drivers ----

type driverView struct{ s *Store }

func (v *driverView) Create(_ context.Context, d *models.Driver) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.drivers {
		if strings.EqualFold(existing.LicenseNumber, d.LicenseNumber) {
			return apperrors.Duplicate("license")
		}
	}
	d.ID = s.allocID()
	s.drivers[d.ID] = *d
	return nil
}

func (v *driverView) GetByID(_ context.Context, id uint) (*models.Driver, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, apperrors.NotFound("driver", id)
	}
	return &d, nil
}

func (v *driverView) ListByOwner(_ context.Context, ownerID uint) ([]models.Driver, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Driver{}
	for _, d := range s.drivers {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (v *driverView) ListAll(_ context.Context) ([]models.Driver, error) {
	s := v.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Driver{}
	for _, d := range s.drivers {
		out = append(out, d)
	}
	return out, nil
}

func (v *driverView) Update(_ context.Context, d *models.Driver) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.ID]; !ok {
		return apperrors.NotFound("driver", d.ID)
	}
	for id, existing := range s.drivers {
		if id != d.ID && strings.EqualFold(existing.LicenseNumber, d.LicenseNumber) {
			return apperrors.Duplicate("license")
		}
	}
	s.drivers[d.ID] = *d
	return nil
}

func (v *driverView) Delete(_ context.Context, id uint) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[id]; !ok {
		return apperrors.NotFound("driver", id)
	}
	for _, t := range s.trips {
		if t.DriverID == id && !models.IsTerminalStatus(t.Status) {
			return apperrors.Conflict(apperrors.ReasonInUse,
				"driver is referenced by a scheduled or active trip")
		}
	}
	delete(s.drivers, id)
	return nil
}
