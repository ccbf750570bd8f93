package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
	"fleet_tracker/internal/models"
)

func PoliceRoutes(r *gin.Engine) {
	police := r.Group("/police")
	police.Use(middleware.RequireAnyRole(models.RolePolice))
	{
		police.GET("/trips", controllers.SearchTrips)
		police.GET("/trips/:id", controllers.GetTripAudit)
		police.GET("/stats", controllers.PoliceStats)
	}
}
