// Package store defines the repository contract the domain services run
// against. Two implementations exist: memory (tests) and gormstore
// (Postgres). Each check-then-act (double-booking on trip creation, the
// status compare-and-set, the capacity-checked manifest append) is a
// single conditional operation here, so an implementation can serialize
// it with a lock or a transaction.
package store

import (
	"context"
	"errors"

	"fleet_tracker/internal/models"
)

// ErrVersionConflict is returned by conditional writes when the entity
// changed since the caller's read. Services re-read and retry.
var ErrVersionConflict = errors.New("store: version conflict")

type UserStore interface {
	// Create inserts the user. Fails Duplicate("email") on a taken address.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type VehicleStore interface {
	// Create inserts the vehicle. Fails Duplicate("plate") when another
	// vehicle holds a case-insensitively equal plate number.
	Create(ctx context.Context, v *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Vehicle, error)
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	// Update rewrites the record under the same plate-uniqueness rule.
	// Fails Conflict(InUse) when capacity would drop below an open trip's
	// manifest length.
	Update(ctx context.Context, v *models.Vehicle) error
	// Delete fails Conflict(InUse) while a scheduled or active trip
	// references the vehicle.
	Delete(ctx context.Context, id uint) error
}

type DriverStore interface {
	// Create inserts the driver. Fails Duplicate("license") when another
	// driver holds a case-insensitively equal license number.
	Create(ctx context.Context, d *models.Driver) error
	GetByID(ctx context.Context, id uint) (*models.Driver, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Driver, error)
	ListAll(ctx context.Context) ([]models.Driver, error)
	Update(ctx context.Context, d *models.Driver) error
	// Delete fails Conflict(InUse) while a scheduled or active trip
	// references the driver.
	Delete(ctx context.Context, id uint) error
}

type TripStore interface {
	// Create inserts the trip in scheduled status. The no-double-booking
	// check and the insert are one atomic unit: it fails
	// Conflict(DoubleBooked) when the vehicle or the driver already has a
	// scheduled or active trip, naming which one in the message.
	Create(ctx context.Context, t *models.Trip) error
	// GetByID returns the trip with its manifest, passengers in insertion
	// order. The returned value is a copy; mutating it touches nothing.
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Trip, error)
	ListAll(ctx context.Context) ([]models.Trip, error)
	// UpdateStatus is a compare-and-set: it moves the trip from `from` to
	// `to` only if the status still equals `from`, otherwise it returns
	// ErrVersionConflict so the caller can re-read and re-validate.
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	// AddPassenger appends to the manifest. The open-status and capacity
	// checks happen atomically with the insert, against the vehicle's
	// capacity as of the append: fails Conflict(TripClosed) on a terminal
	// trip and Conflict(CapacityExceeded) when the manifest is full.
	AddPassenger(ctx context.Context, tripID uint, p *models.Passenger) error
	// RemovePassenger deletes one manifest entry, preserving the relative
	// order of the rest. Fails Conflict(TripClosed) on a terminal trip and
	// NotFound("passenger") when absent.
	RemovePassenger(ctx context.Context, tripID, passengerID uint) error
}
