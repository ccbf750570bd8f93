package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/services"
)

// SearchTrips lets an officer filter every operator's trips by plate,
// owner name or driver name (?q=, case-insensitive substring).
func SearchTrips(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityPolice)
	if err != nil {
		writeError(c, err)
		return
	}

	offset, limit := parsePaging(c)
	summaries, err := deps.Query.SearchPage(c.Request.Context(), r, c.Query("q"), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// GetTripAudit is the read-all variant of GetTrip for officers.
func GetTripAudit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := services.Authorize(requester(c), services.CapabilityPolice)
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

// PoliceStats backs the checkpost dashboard counters.
func PoliceStats(c *gin.Context) {
	r, err := services.Authorize(requester(c), services.CapabilityPolice)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := deps.Query.PoliceStats(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
