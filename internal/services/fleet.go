package services

import (
	"context"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store"
)

// FleetService owns vehicle and driver records: registration with
// case-insensitive plate/license uniqueness, updates under the same
// rules, and deletion guarded against open trips.
type FleetService struct {
	vehicles store.VehicleStore
	drivers  store.DriverStore
}

func NewFleetService(vehicles store.VehicleStore, drivers store.DriverStore) *FleetService {
	return &FleetService{vehicles: vehicles, drivers: drivers}
}

func (s *FleetService) RegisterVehicle(ctx context.Context, r *Requester, plate, vtype, model string, capacity int) (*models.Vehicle, error) {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, apperrors.Validation("plate_number", "plate number is required")
	}
	normType, ok := models.NormalizeVehicleType(vtype)
	if !ok {
		return nil, apperrors.Validation("type", "must be one of car, bus, truck, van")
	}
	if strings.TrimSpace(model) == "" {
		return nil, apperrors.Validation("model", "model is required")
	}
	if capacity <= 0 {
		return nil, apperrors.Validation("capacity", "capacity must be a positive integer")
	}

	v := &models.Vehicle{
		PlateNumber:  plate,
		Type:         normType,
		VehicleModel: model,
		Capacity:     capacity,
		OwnerID:      r.ID,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"vehicle_id": v.ID, "owner_id": r.ID}).Info("vehicle registered")
	return v, nil
}

func (s *FleetService) GetVehicle(ctx context.Context, r *Requester, id uint) (*models.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, police := RoleCapabilities(r.Role); !police && v.OwnerID != r.ID {
		return nil, apperrors.NotFound("vehicle", id)
	}
	return v, nil
}

func (s *FleetService) ListVehicles(ctx context.Context, r *Requester) ([]models.Vehicle, error) {
	if _, police := RoleCapabilities(r.Role); police {
		return s.vehicles.ListAll(ctx)
	}
	return s.vehicles.ListByOwner(ctx, r.ID)
}

func (s *FleetService) UpdateVehicle(ctx context.Context, r *Requester, id uint, plate, vtype, model string, capacity int) (*models.Vehicle, error) {
	v, err := s.GetVehicle(ctx, r, id)
	if err != nil {
		return nil, err
	}
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, apperrors.Validation("plate_number", "plate number is required")
	}
	normType, ok := models.NormalizeVehicleType(vtype)
	if !ok {
		return nil, apperrors.Validation("type", "must be one of car, bus, truck, van")
	}
	if strings.TrimSpace(model) == "" {
		return nil, apperrors.Validation("model", "model is required")
	}
	if capacity <= 0 {
		return nil, apperrors.Validation("capacity", "capacity must be a positive integer")
	}

	v.PlateNumber = plate
	v.Type = normType
	v.VehicleModel = model
	v.Capacity = capacity
	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *FleetService) DeleteVehicle(ctx context.Context, r *Requester, id uint) error {
	if _, err := s.GetVehicle(ctx, r, id); err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *FleetService) RegisterDriver(ctx context.Context, r *Requester, name, license, phone string, experienceYears int) (*models.Driver, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name", "name is required")
	}
	license = strings.TrimSpace(license)
	if license == "" {
		return nil, apperrors.Validation("license_number", "license number is required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, apperrors.Validation("phone", "phone is required")
	}
	if experienceYears < 0 {
		return nil, apperrors.Validation("experience_years", "experience cannot be negative")
	}

	d := &models.Driver{
		Name:            name,
		LicenseNumber:   license,
		Phone:           phone,
		ExperienceYears: experienceYears,
		OwnerID:         r.ID,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"driver_id": d.ID, "owner_id": r.ID}).Info("driver registered")
	return d, nil
}

func (s *FleetService) GetDriver(ctx context.Context, r *Requester, id uint) (*models.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, police := RoleCapabilities(r.Role); !police && d.OwnerID != r.ID {
		return nil, apperrors.NotFound("driver", id)
	}
	return d, nil
}

func (s *FleetService) ListDrivers(ctx context.Context, r *Requester) ([]models.Driver, error) {
	if _, police := RoleCapabilities(r.Role); police {
		return s.drivers.ListAll(ctx)
	}
	return s.drivers.ListByOwner(ctx, r.ID)
}

func (s *FleetService) UpdateDriver(ctx context.Context, r *Requester, id uint, name, license, phone string, experienceYears int) (*models.Driver, error) {
	d, err := s.GetDriver(ctx, r, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name", "name is required")
	}
	license = strings.TrimSpace(license)
	if license == "" {
		return nil, apperrors.Validation("license_number", "license number is required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, apperrors.Validation("phone", "phone is required")
	}
	if experienceYears < 0 {
		return nil, apperrors.Validation("experience_years", "experience cannot be negative")
	}

	d.Name = name
	d.LicenseNumber = license
	d.Phone = phone
	d.ExperienceYears = experienceYears
	if err := s.drivers.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *FleetService) DeleteDriver(ctx context.Context, r *Requester, id uint) error {
	if _, err := s.GetDriver(ctx, r, id); err != nil {
		return err
	}
	return s.drivers.Delete(ctx, id)
}
