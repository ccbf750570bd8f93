// Package services holds the domain core: fleet registry, trip ledger,
// passenger manifest, trip queries, and the capability gate in front of
// them. Handlers never touch the stores directly.
package services

import (
	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
)

type Capability int

const (
	// CapabilityOwner scopes reads and writes to the caller's own fleet.
	CapabilityOwner Capability = iota + 1
	// CapabilityPolice grants read-only visibility across all fleets.
	CapabilityPolice
)

// Requester is the resolved user a valid session maps to. The auth
// provider (JWT middleware) supplies it; the gate only decides whether
// the role carries the capability an operation needs.
type Requester struct {
	ID   uint
	Name string
	Role string
}

// RoleCapabilities is the closed capability table over the role enum.
func RoleCapabilities(role string) (ownerCapable, policeCapable bool) {
	switch {
	case models.IsFleetOperator(role):
		return true, false
	case role == models.RolePolice:
		return false, true
	}
	return false, false
}

// Authorize resolves the session into a requester usable as owner/reader
// context, or fails Unauthorized. Stateless per call.
func Authorize(r *Requester, required Capability) (*Requester, error) {
	if r == nil || r.ID == 0 {
		return nil, apperrors.Unauthorized("no authenticated session")
	}
	ownerCapable, policeCapable := RoleCapabilities(r.Role)
	switch required {
	case CapabilityOwner:
		if ownerCapable {
			return r, nil
		}
	case CapabilityPolice:
		if policeCapable {
			return r, nil
		}
	}
	return nil, apperrors.Unauthorized("role " + r.Role + " lacks the required capability")
}
