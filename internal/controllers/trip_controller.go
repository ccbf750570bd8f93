package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/services"
)

type tripInput struct {
	VehicleID   uint      `json:"vehicle_id" binding:"required"`
	DriverID    uint      `json:"driver_id" binding:"required"`
	Origin      string    `json:"origin" binding:"required"`
	Destination string    `json:"destination" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CreateTrip schedules a trip for the operator's own vehicle and driver.
func CreateTrip(c *gin.Context) {
	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip input: " + err.Error()})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	trip, err := deps.Trips.CreateTrip(c.Request.Context(), r, input.VehicleID, input.DriverID, input.Origin, input.Destination, input.ScheduledAt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

func ListTrips(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	trips, err := deps.Trips.ListTrips(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trips})
}

func GetTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	trip, err := deps.Trips.GetTrip(c.Request.Context(), r, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// TransitionTrip moves a trip along its lifecycle: scheduled to active,
// active to completed, or cancellation from either open status.
func TransitionTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	trip, err := deps.Trips.Transition(c.Request.Context(), r, id, body.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type passengerInput struct {
	Name    string `json:"name" binding:"required"`
	IDProof string `json:"id_proof" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

func AddPassenger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input passengerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid passenger input: " + err.Error()})
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	passenger, err := deps.Manifest.AddPassenger(c.Request.Context(), r, id, input.Name, input.IDProof, input.Phone)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"passenger": passenger})
}

func RemovePassenger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pid, ok := parseIDParam(c, "pid")
	if !ok {
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := deps.Manifest.RemovePassenger(c.Request.Context(), r, id, pid); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Passenger removed"})
}

// OwnerStats backs the operator dashboard counters.
func OwnerStats(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityOwner)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := deps.Query.OwnerStats(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
