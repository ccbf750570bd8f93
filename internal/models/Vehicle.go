// internal/models/vehicle.go
package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	VehicleTypeCar   = "car"
	VehicleTypeBus   = "bus"
	VehicleTypeTruck = "truck"
	VehicleTypeVan   = "van"
)

type Vehicle struct {
	gorm.Model
	PlateNumber  string `json:"plate_number"` // unique, case-insensitive (partial lower() index, see config.InitDB)
	Type         string `json:"type"`                            // "car", "bus", "truck", "van"
	VehicleModel string `json:"model"`
	Capacity     int    `json:"capacity"`
	OwnerID      uint   `json:"owner_id" gorm:"index"`
}

// NormalizeVehicleType lower-cases the input and reports whether it is a
// known vehicle type.
func NormalizeVehicleType(t string) (string, bool) {
	t = strings.ToLower(strings.TrimSpace(t))
	switch t {
	case VehicleTypeCar, VehicleTypeBus, VehicleTypeTruck, VehicleTypeVan:
		return t, true
	}
	return "", false
}
