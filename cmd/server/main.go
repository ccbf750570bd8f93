package main

import (
	"log"
	"net/http"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/logger"
	"fleet_tracker/internal/middleware"
	"fleet_tracker/internal/routes"
	"fleet_tracker/internal/services"
	"fleet_tracker/internal/store/gormstore"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Wire stores and domain services
	st := gormstore.New(config.DB)
	vehicles := st.Vehicles()
	drivers := st.Drivers()
	trips := st.Trips()
	users := st.Users()

	controllers.Init(controllers.Deps{
		Fleet:    services.NewFleetService(vehicles, drivers),
		Trips:    services.NewTripService(trips, vehicles, drivers),
		Manifest: services.NewManifestService(trips),
		Query:    services.NewQueryService(trips, vehicles, drivers, users),
		Users:    users,
	})

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	logger.WithComponent("server").Info("listening at " + addr)
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
