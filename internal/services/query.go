package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

// TripSummary is a trip row resolved for display: plate, driver and
// owner names instead of ids. It is a copy; callers can do what they
// want with it.
type TripSummary struct {
	TripID      uint      `json:"trip_id"`
	PlateNumber string    `json:"plate_number"`
	DriverName  string    `json:"driver_name"`
	OwnerName   string    `json:"owner_name"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Passengers  int       `json:"passengers"`
}

type OwnerStats struct {
	Vehicles    int `json:"vehicles"`
	Drivers     int `json:"drivers"`
	ActiveTrips int `json:"active_trips"`
}

type PoliceStats struct {
	ActiveTrips     int `json:"active_trips"`
	CompletedTrips  int `json:"completed_trips"`
	TotalPassengers int `json:"total_passengers"`
}

// QueryService is the read side: role-scoped search and the dashboard
// counters. Pure reads over store snapshots; nothing here mutates state.
type QueryService struct {
	trips    store.TripStore
	vehicles store.VehicleStore
	drivers  store.DriverStore
	users    store.UserStore
}

func NewQueryService(trips store.TripStore, vehicles store.VehicleStore, drivers store.DriverStore, users store.UserStore) *QueryService {
	return &QueryService{trips: trips, vehicles: vehicles, drivers: drivers, users: users}
}

// Search returns summaries of the trips visible to the requester whose
// plate, owner name or driver name contains filter (case-insensitive;
// empty filter matches all). Ordered by scheduled time, ties by id.
func (s *QueryService) Search(ctx context.Context, r *Requester, filter string) ([]TripSummary, error) {
	ownerCapable, policeCapable := RoleCapabilities(r.Role)

	var trips []models.Trip
	var err error
	switch {
	case policeCapable:
		trips, err = s.trips.ListAll(ctx)
	case ownerCapable:
		trips, err = s.trips.ListByOwner(ctx, r.ID)
	default:
		return nil, apperrors.Unauthorized("role " + r.Role + " cannot search trips")
	}
	if err != nil {
		return nil, err
	}

	plates, driverNames, err := s.nameIndexes(ctx, r, policeCapable)
	if err != nil {
		return nil, err
	}

	owners := map[uint]string{}
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := []TripSummary{}
	for _, t := range trips {
		ownerName, ok := owners[t.OwnerID]
		if !ok {
			if u, err := s.users.GetByID(ctx, t.OwnerID); err == nil {
				ownerName = u.Name
			}
			owners[t.OwnerID] = ownerName
		}
		plate := plates[t.VehicleID]
		driverName := driverNames[t.DriverID]

		if needle != "" &&
			!strings.Contains(strings.ToLower(plate), needle) &&
			!strings.Contains(strings.ToLower(ownerName), needle) &&
			!strings.Contains(strings.ToLower(driverName), needle) {
			continue
		}
		out = append(out, TripSummary{
			TripID:      t.ID,
			PlateNumber: plate,
			DriverName:  driverName,
			OwnerName:   ownerName,
			Origin:      t.Origin,
			Destination: t.Destination,
			ScheduledAt: t.ScheduledAt,
			Status:      t.Status,
			Passengers:  len(t.Passengers),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].TripID < out[j].TripID
	})
	return out, nil
}

// SearchPage windows a Search result with offset/limit. limit <= 0 means
// no limit.
func (s *QueryService) SearchPage(ctx context.Context, r *Requester, filter string, offset, limit int) ([]TripSummary, error) {
	all, err := s.Search(ctx, r, filter)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []TripSummary{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *QueryService) OwnerStats(ctx context.Context, r *Requester) (*OwnerStats, error) {
	vehicles, err := s.vehicles.ListByOwner(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	drivers, err := s.drivers.ListByOwner(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.ListByOwner(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	stats := &OwnerStats{Vehicles: len(vehicles), Drivers: len(drivers)}
	for _, t := range trips {
		if t.Status == models.TripActive {
			stats.ActiveTrips++
		}
	}
	return stats, nil
}

func (s *QueryService) PoliceStats(ctx context.Context, r *Requester) (*PoliceStats, error) {
	if _, police := RoleCapabilities(r.Role); !police {
		return nil, apperrors.Unauthorized("role " + r.Role + " cannot view audit stats")
	}
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := &PoliceStats{}
	for _, t := range trips {
		switch t.Status {
		case models.TripActive:
			stats.ActiveTrips++
		case models.TripCompleted:
			stats.CompletedTrips++
		}
		stats.TotalPassengers += len(t.Passengers)
	}
	return stats, nil
}

// nameIndexes builds vehicle-plate and driver-name lookups scoped the
// same way the trip listing was.
func (s *QueryService) nameIndexes(ctx context.Context, r *Requester, policeCapable bool) (map[uint]string, map[uint]string, error) {
	var (
		vehicles []models.Vehicle
		drivers  []models.Driver
		err      error
	)
	if policeCapable {
		vehicles, err = s.vehicles.ListAll(ctx)
	} else {
		vehicles, err = s.vehicles.ListByOwner(ctx, r.ID)
	}
	if err != nil {
		return nil, nil, err
	}
	if policeCapable {
		drivers, err = s.drivers.ListAll(ctx)
	} else {
		drivers, err = s.drivers.ListByOwner(ctx, r.ID)
	}
	if err != nil {
		return nil, nil, err
	}

	plates := make(map[uint]string, len(vehicles))
	for _, v := range vehicles {
		plates[v.ID] = v.PlateNumber
	}
	names := make(map[uint]string, len(drivers))
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	return plates, names, nil
}
