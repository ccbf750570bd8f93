package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/services"
)

type vehicleInput struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
}

// CreateVehicle registers a vehicle under the authenticated operator.
func CreateVehicle(c *gin.Context) {
	var input vehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	vehicle, err := deps.Fleet.RegisterVehicle(c.Request.Context(), r, input.PlateNumber, input.Type, input.Model, input.Capacity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func ListVehicles(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	vehicles, err := deps.Fleet.ListVehicles(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func UpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input vehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	vehicle, err := deps.Fleet.UpdateVehicle(c.Request.Context(), r, id, input.PlateNumber, input.Type, input.Model, input.Capacity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := deps.Fleet.DeleteVehicle(c.Request.Context(), r, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
