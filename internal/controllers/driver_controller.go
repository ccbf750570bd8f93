package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/services"
)

type driverInput struct {
	Name            string `json:"name" binding:"required"`
	LicenseNumber   string `json:"license_number" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	ExperienceYears int    `json:"experience_years"`
}

// CreateDriver registers a driver under the authenticated operator.
func CreateDriver(c *gin.Context) {
	var input driverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	driver, err := deps.Fleet.RegisterDriver(c.Request.Context(), r, input.Name, input.LicenseNumber, input.Phone, input.ExperienceYears)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func ListDrivers(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	drivers, err := deps.Fleet.ListDrivers(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

func UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input driverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	driver, err := deps.Fleet.UpdateDriver(c.Request.Context(), r, id, input.Name, input.LicenseNumber, input.Phone, input.ExperienceYears)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := deps.Fleet.DeleteDriver(c.Request.Context(), r, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
