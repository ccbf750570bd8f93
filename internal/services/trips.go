package services

import (
	"context"
	"errors"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

// transitionAttempts bounds the compare-and-set retry loop before the
// contention is reported as a transient (retryable) error.
const transitionAttempts = 5

// TripService owns trip records and their lifecycle. The double-booking
// guard itself lives in the store's atomic Create; this layer resolves
// references, checks ownership, and drives the status machine.
type TripService struct {
	trips    store.TripStore
	vehicles store.VehicleStore
	drivers  store.DriverStore
}

func NewTripService(trips store.TripStore, vehicles store.VehicleStore, drivers store.DriverStore) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, drivers: drivers}
}

func (s *TripService) CreateTrip(ctx context.Context, r *Requester, vehicleID, driverID uint, origin, destination string, scheduledAt time.Time) (*models.Trip, error) {
	if vehicleID == 0 {
		return nil, apperrors.Validation("vehicle_id", "vehicle is required")
	}
	if driverID == 0 {
		return nil, apperrors.Validation("driver_id", "driver is required")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, apperrors.Validation("origin", "origin is required")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, apperrors.Validation("destination", "destination is required")
	}
	if scheduledAt.IsZero() {
		return nil, apperrors.Validation("scheduled_at", "scheduled time is required")
	}

	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != r.ID {
		return nil, apperrors.Unauthorized("vehicle belongs to another operator")
	}
	d, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != r.ID {
		return nil, apperrors.Unauthorized("driver belongs to another operator")
	}

	t := &models.Trip{
		VehicleID:   vehicleID,
		DriverID:    driverID,
		Origin:      origin,
		Destination: destination,
		ScheduledAt: scheduledAt,
		OwnerID:     r.ID,
	}
	if err := s.trips.Create(ctx, t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"trip_id":    t.ID,
		"vehicle_id": vehicleID,
		"driver_id":  driverID,
	}).Info("trip created")
	return t, nil
}

// Transition moves the trip along a legal status edge. The store applies
// it as a compare-and-set; on a stale read we re-read and re-validate,
// so an illegal edge is always reported against the current status.
func (s *TripService) Transition(ctx context.Context, r *Requester, tripID uint, target string) (*models.Trip, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if !models.KnownStatus(target) {
		return nil, apperrors.Validation("status", "unknown trip status")
	}

	for attempt := 0; attempt < transitionAttempts; attempt++ {
		t, err := s.GetTrip(ctx, r, tripID)
		if err != nil {
			return nil, err
		}
		if !models.ValidTransition(t.Status, target) {
			return nil, apperrors.InvalidTransition(t.Status, target)
		}
		err = s.trips.UpdateStatus(ctx, tripID, t.Status, target)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.GetTrip(ctx, r, tripID)
	}
	return nil, apperrors.Transient(errors.New("trip status contention, retry"))
}

func (s *TripService) GetTrip(ctx context.Context, r *Requester, id uint) (*models.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, police := RoleCapabilities(r.Role); !police && t.OwnerID != r.ID {
		return nil, apperrors.NotFound("trip", id)
	}
	return t, nil
}

func (s *TripService) ListTrips(ctx context.Context, r *Requester) ([]models.Trip, error) {
	if _, police := RoleCapabilities(r.Role); police {
		return s.trips.ListAll(ctx)
	}
	return s.trips.ListByOwner(ctx, r.ID)
}
