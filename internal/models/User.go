package models

import "gorm.io/gorm"

// Role values accepted at signup. Individual owners and companies both
// manage their own fleet; police get read-only visibility across fleets.
const (
	RoleIndividual = "individual"
	RoleCompany    = "company"
	RolePolice     = "police"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "individual", "company", "police"
}

// IsFleetOperator reports whether the role owns vehicles/drivers/trips.
func IsFleetOperator(role string) bool {
	return role == RoleIndividual || role == RoleCompany
}
