// internal/models/trip.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TripScheduled = "scheduled"
	TripActive    = "active"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

type Trip struct {
	gorm.Model
	VehicleID   uint        `json:"vehicle_id" gorm:"index"`
	DriverID    uint        `json:"driver_id" gorm:"index"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Status      string      `json:"status"` // "scheduled", "active", "completed", "cancelled"
	OwnerID     uint        `json:"owner_id" gorm:"index"` // denormalized from vehicle/driver owner, fixed at creation
	Version     int         `json:"-" gorm:"default:1"`    // optimistic concurrency token, bumped on every write
	Passengers  []Passenger `json:"passengers" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// IsTerminalStatus reports whether a trip in this status can never change again.
func IsTerminalStatus(s string) bool {
	return s == TripCompleted || s == TripCancelled
}

// ValidTransition reports whether the status machine allows from → to.
// Legal edges: scheduled→active, scheduled→cancelled, active→completed,
// active→cancelled. Everything else is rejected.
func ValidTransition(from, to string) bool {
	switch from {
	case TripScheduled:
		return to == TripActive || to == TripCancelled
	case TripActive:
		return to == TripCompleted || to == TripCancelled
	}
	return false
}

// KnownStatus reports whether s is one of the four trip statuses.
func KnownStatus(s string) bool {
	switch s {
	case TripScheduled, TripActive, TripCompleted, TripCancelled:
		return true
	}
	return false
}
