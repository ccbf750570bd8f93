// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	Name            string `json:"name"`
	LicenseNumber   string `json:"license_number"` // unique, case-insensitive (partial lower() index, see config.InitDB)
	Phone           string `json:"phone"`
	ExperienceYears int    `json:"experience_years"`
	OwnerID         uint   `json:"owner_id" gorm:"index"`
}
