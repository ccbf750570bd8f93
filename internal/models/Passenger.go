// internal/models/passenger.go
package models

import "gorm.io/gorm"

// Passenger belongs to exactly one trip's manifest. Rows are created and
// deleted only through the manifest operations while the trip is open.
type Passenger struct {
	gorm.Model
	TripID  uint   `json:"trip_id" gorm:"index"`
	Name    string `json:"name"`
	IDProof string `json:"id_proof"`
	Phone   string `json:"phone"`
}
