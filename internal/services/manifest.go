package services

import (
	"context"
	"strings"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

// ManifestService mutates the passenger list of a trip. Capacity and
// open-status checks happen atomically with the write in the store,
// against the vehicle's capacity at append time.
type ManifestService struct {
	trips store.TripStore
}

func NewManifestService(trips store.TripStore) *ManifestService {
	return &ManifestService{trips: trips}
}

func (s *ManifestService) AddPassenger(ctx context.Context, r *Requester, tripID uint, name, idProof, phone string) (*models.Passenger, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name", "name is required")
	}
	if strings.TrimSpace(idProof) == "" {
		return nil, apperrors.Validation("id_proof", "id proof is required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, apperrors.Validation("phone", "phone is required")
	}

	if _, err := s.tripForOwner(ctx, r, tripID); err != nil {
		return nil, err
	}

	p := &models.Passenger{Name: name, IDProof: idProof, Phone: phone}
	if err := s.trips.AddPassenger(ctx, tripID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ManifestService) RemovePassenger(ctx context.Context, r *Requester, tripID, passengerID uint) error {
	if _, err := s.tripForOwner(ctx, r, tripID); err != nil {
		return err
	}
	return s.trips.RemovePassenger(ctx, tripID, passengerID)
}

// tripForOwner hides other operators' trips entirely.
func (s *ManifestService) tripForOwner(ctx context.Context, r *Requester, tripID uint) (*models.Trip, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != r.ID {
		return nil, apperrors.NotFound("trip", tripID)
	}
	return t, nil
}
