package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
	"fleet_tracker/internal/models"
)

func OwnerRoutes(r *gin.Engine) {
	owner := r.Group("/owner")
	owner.Use(middleware.RequireAnyRole(models.RoleIndividual, models.RoleCompany))
	{
		owner.POST("/vehicles", controllers.CreateVehicle)
		owner.GET("/vehicles", controllers.ListVehicles)
		owner.PUT("/vehicles/:id", controllers.UpdateVehicle)
		owner.DELETE("/vehicles/:id", controllers.DeleteVehicle)

		owner.POST("/drivers", controllers.CreateDriver)
		owner.GET("/drivers", controllers.ListDrivers)
		owner.PUT("/drivers/:id", controllers.UpdateDriver)
		owner.DELETE("/drivers/:id", controllers.DeleteDriver)

		owner.POST("/trips", controllers.CreateTrip)
		owner.GET("/trips", controllers.ListTrips)
		owner.GET("/trips/:id", controllers.GetTrip)
		owner.PATCH("/trips/:id/status", controllers.TransitionTrip)
		owner.POST("/trips/:id/passengers", controllers.AddPassenger)
		owner.DELETE("/trips/:id/passengers/:pid", controllers.RemovePassenger)

		owner.GET("/stats", controllers.OwnerStats)
	}
}
