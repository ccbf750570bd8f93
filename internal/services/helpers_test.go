package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/require"

	"fleet_tracker/internal/models"
	"fleet_tracker/internal/store/memory"
)

// fixture wires the services over a fresh in-memory store with one
// individual owner, one company and one police officer registered.
type fixture struct {
	ctx      context.Context
	store    *memory.Store
	fleet    *FleetService
	trips    *TripService
	manifest *ManifestService
	query    *QueryService

	owner1  *Requester
	owner2  *Requester
	officer *Requester
}

type requireT interface {
	require.TestingT
}

func newFixture(t requireT) *fixture {
	st := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		store:    st,
		fleet:    NewFleetService(st.Vehicles(), st.Drivers()),
		trips:    NewTripService(st.Trips(), st.Vehicles(), st.Drivers()),
		manifest: NewManifestService(st.Trips()),
		query:    NewQueryService(st.Trips(), st.Vehicles(), st.Drivers(), st.Users()),
	}

	u1 := &models.User{Name: "John Doe", Email: "john@example.com", Role: models.RoleIndividual}
	require.NoError(t, st.Users().Create(f.ctx, u1))
	u2 := &models.User{Name: "ABC Transport Co", Email: "abc@example.com", Role: models.RoleCompany}
	require.NoError(t, st.Users().Create(f.ctx, u2))
	u3 := &models.User{Name: "Officer Khan", Email: "khan@police.example.com", Role: models.RolePolice}
	require.NoError(t, st.Users().Create(f.ctx, u3))

	f.owner1 = &Requester{ID: u1.ID, Name: u1.Name, Role: u1.Role}
	f.owner2 = &Requester{ID: u2.ID, Name: u2.Name, Role: u2.Role}
	f.officer = &Requester{ID: u3.ID, Name: u3.Name, Role: u3.Role}
	return f
}

func (f *fixture) mustVehicle(t requireT, r *Requester, plate string, capacity int) *models.Vehicle {
	v, err := f.fleet.RegisterVehicle(f.ctx, r, plate, "car", "Maruti Swift", capacity)
	require.NoError(t, err)
	return v
}

func (f *fixture) mustDriver(t requireT, r *Requester, name, license string) *models.Driver {
	d, err := f.fleet.RegisterDriver(f.ctx, r, name, license, "+91 9876543210", 5)
	require.NoError(t, err)
	return d
}

func (f *fixture) mustTrip(t requireT, r *Requester, vehicleID, driverID uint, at time.Time) *models.Trip {
	trip, err := f.trips.CreateTrip(f.ctx, r, vehicleID, driverID, "Mumbai", "Pune", at)
	require.NoError(t, err)
	return trip
}

func testTime(hour int) time.Time {
	return time.Date(2024, 1, 15, hour, 30, 0, 0, time.UTC)
}
