// Package gormstore is the Postgres-backed store. Check-then-act
// sequences run inside a transaction with SELECT ... FOR UPDATE row
// locks, so two concurrent writers against the same vehicle, driver or
// trip serialize at the database.
package gormstore

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

var (
	_ store.UserStore    = (*userStore)(nil)
	_ store.VehicleStore = (*vehicleStore)(nil)
	_ store.DriverStore  = (*driverStore)(nil)
	_ store.TripStore    = (*tripStore)(nil)
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() *userStore       { return &userStore{db: s.db} }
func (s *Store) Vehicles() *vehicleStore { return &vehicleStore{db: s.db} }
func (s *Store) Drivers() *driverStore   { return &driverStore{db: s.db} }
func (s *Store) Trips() *tripStore       { return &tripStore{db: s.db} }

// isUniqueViolation catches Postgres 23505 regardless of driver wrapping.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// wrap turns unexpected gorm errors into the taxonomy: record-not-found
// becomes NotFound, anything else is treated as a retryable storage fault.
func wrap(err error, entity string, id uint) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return apperrors.Transient(err)
}

// ---- users ----

type userStore struct{ db *gorm.DB }

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicate("email")
		}
		return apperrors.Transient(err)
	}
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, wrap(err, "user", id)
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if err != nil {
		return nil, wrap(err, "user", 0)
	}
	return &u, nil
}

// ---- vehicles ----

type vehicleStore struct{ db *gorm.DB }

func (s *vehicleStore) Create(ctx context.Context, v *models.Vehicle) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Vehicle{}).
			Where("LOWER(plate_number) = LOWER(?)", v.PlateNumber).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Duplicate("plate")
		}
		return tx.Create(v).Error
	})
	if err != nil && isUniqueViolation(err) {
		// lost the race to the partial lower() index
		return apperrors.Duplicate("plate")
	}
	return wrap(err, "vehicle", 0)
}

func (s *vehicleStore) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, wrap(err, "vehicle", id)
	}
	return &v, nil
}

func (s *vehicleStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&out).Error
	return out, wrap(err, "vehicle", 0)
}

func (s *vehicleStore) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, wrap(err, "vehicle", 0)
}

func (s *vehicleStore) Update(ctx context.Context, v *models.Vehicle) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, v.ID).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Vehicle{}).
			Where("LOWER(plate_number) = LOWER(?) AND id <> ?", v.PlateNumber, v.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Duplicate("plate")
		}
		if v.Capacity < current.Capacity {
			// shrinking capacity must not strand an open manifest
			var over int64
			err := tx.Raw(`SELECT COUNT(*) FROM trips t
				WHERE t.vehicle_id = ? AND t.status IN (?, ?) AND t.deleted_at IS NULL
				AND (SELECT COUNT(*) FROM passengers p
				     WHERE p.trip_id = t.id AND p.deleted_at IS NULL) > ?`,
				v.ID, models.TripScheduled, models.TripActive, v.Capacity).
				Scan(&over).Error
			if err != nil {
				return err
			}
			if over > 0 {
				return apperrors.Conflict(apperrors.ReasonInUse,
					"capacity cannot drop below an open trip's manifest")
			}
		}
		return tx.Save(v).Error
	})
	if err != nil && isUniqueViolation(err) {
		return apperrors.Duplicate("plate")
	}
	return wrap(err, "vehicle", v.ID)
}

func (s *vehicleStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&v, id).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Trip{}).
			Where("vehicle_id = ? AND status IN (?, ?)", id, models.TripScheduled, models.TripActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Conflict(apperrors.ReasonInUse,
				"vehicle is referenced by a scheduled or active trip")
		}
		return tx.Delete(&v).Error
	})
	return wrap(err, "vehicle", id)
}

// ---- drivers ----

type driverStore struct{ db *gorm.DB }

func (s *driverStore) Create(ctx context.Context, d *models.Driver) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Driver{}).
			Where("LOWER(license_number) = LOWER(?)", d.LicenseNumber).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Duplicate("license")
		}
		return tx.Create(d).Error
	})
	if err != nil && isUniqueViolation(err) {
		return apperrors.Duplicate("license")
	}
	return wrap(err, "driver", 0)
}

func (s *driverStore) GetByID(ctx context.Context, id uint) (*models.Driver, error) {
	var d models.Driver
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, wrap(err, "driver", id)
	}
	return &d, nil
}

func (s *driverStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Driver, error) {
	var out []models.Driver
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&out).Error
	return out, wrap(err, "driver", 0)
}

func (s *driverStore) ListAll(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, wrap(err, "driver", 0)
}

func (s *driverStore) Update(ctx context.Context, d *models.Driver) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Driver
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, d.ID).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Driver{}).
			Where("LOWER(license_number) = LOWER(?) AND id <> ?", d.LicenseNumber, d.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Duplicate("license")
		}
		return tx.Save(d).Error
	})
	if err != nil && isUniqueViolation(err) {
		return apperrors.Duplicate("license")
	}
	return wrap(err, "driver", d.ID)
}

func (s *driverStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Driver
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, id).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Trip{}).
			Where("driver_id = ? AND status IN (?, ?)", id, models.TripScheduled, models.TripActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperrors.Conflict(apperrors.ReasonInUse,
				"driver is referenced by a scheduled or active trip")
		}
		return tx.Delete(&d).Error
	})
	return wrap(err, "driver", id)
}
