package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

type tripStore struct{ db *gorm.DB }

// Create locks the vehicle and driver rows first, so two concurrent
// creates for the same resource serialize and the second one sees the
// first one's trip when it scans.
func (s *tripStore) Create(ctx context.Context, t *models.Trip) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&v, t.VehicleID).Error; err != nil {
			return wrap(err, "vehicle", t.VehicleID)
		}
		var d models.Driver
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, t.DriverID).Error; err != nil {
			return wrap(err, "driver", t.DriverID)
		}

		var n int64
		if err := tx.Model(&models.Trip{}).
			Where("vehicle_id = ? AND status IN (?, ?)", t.VehicleID, models.TripScheduled, models.TripActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Conflict(apperrors.ReasonDoubleBooked,
				"vehicle already has a scheduled or active trip")
		}
		if err := tx.Model(&models.Trip{}).
			Where("driver_id = ? AND status IN (?, ?)", t.DriverID, models.TripScheduled, models.TripActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Conflict(apperrors.ReasonDoubleBooked,
				"driver already has a scheduled or active trip")
		}

		t.Status = models.TripScheduled
		t.Version = 1
		return tx.Omit("Passengers").Create(t).Error
	})
	return wrap(err, "trip", 0)
}

func (s *tripStore) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := s.db.WithContext(ctx).
		Preload("Passengers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&t, id).Error
	if err != nil {
		return nil, wrap(err, "trip", id)
	}
	return &t, nil
}

func (s *tripStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Trip, error) {
	var out []models.Trip
	err := s.db.WithContext(ctx).
		Preload("Passengers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("owner_id = ?", ownerID).
		Order("scheduled_at ASC, id ASC").
		Find(&out).Error
	return out, wrap(err, "trip", 0)
}

func (s *tripStore) ListAll(ctx context.Context) ([]models.Trip, error) {
	var out []models.Trip
	err := s.db.WithContext(ctx).
		Preload("Passengers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("scheduled_at ASC, id ASC").
		Find(&out).Error
	return out, wrap(err, "trip", 0)
}

// UpdateStatus is a compare-and-set on the status column. Zero rows
// affected means either the trip is gone or the caller read a stale
// status; the caller disambiguates by re-reading.
func (s *tripStore) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	res := s.db.WithContext(ctx).Model(&models.Trip{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":  to,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return apperrors.Transient(res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Trip{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return apperrors.Transient(err)
		}
		if n == 0 {
			return apperrors.NotFound("trip", id)
		}
		return store.ErrVersionConflict
	}
	return nil
}

func (s *tripStore) AddPassenger(ctx context.Context, tripID uint, p *models.Passenger) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Trip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, tripID).Error; err != nil {
			return wrap(err, "trip", tripID)
		}
		if models.IsTerminalStatus(t.Status) {
			return apperrors.Conflict(apperrors.ReasonTripClosed, "trip is no longer open")
		}
		// lock the vehicle row too, so a concurrent capacity shrink
		// serializes against this append instead of racing it
		var v models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&v, t.VehicleID).Error; err != nil {
			return wrap(err, "vehicle", t.VehicleID)
		}
		var n int64
		if err := tx.Model(&models.Passenger{}).
			Where("trip_id = ?", tripID).Count(&n).Error; err != nil {
			return err
		}
		if int(n)+1 > v.Capacity {
			return apperrors.Conflict(apperrors.ReasonCapacityExceeded, "manifest is at vehicle capacity")
		}
		p.TripID = tripID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Model(&t).Update("version", gorm.Expr("version + 1")).Error
	})
	return wrap(err, "trip", tripID)
}

func (s *tripStore) RemovePassenger(ctx context.Context, tripID, passengerID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Trip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, tripID).Error; err != nil {
			return wrap(err, "trip", tripID)
		}
		if models.IsTerminalStatus(t.Status) {
			return apperrors.Conflict(apperrors.ReasonTripClosed, "trip is no longer open")
		}
		res := tx.Where("id = ? AND trip_id = ?", passengerID, tripID).
			Delete(&models.Passenger{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("passenger", passengerID)
		}
		return tx.Model(&t).Update("version", gorm.Expr("version + 1")).Error
	})
	return wrap(err, "trip", tripID)
}
