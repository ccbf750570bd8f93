package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/services"
	"fleet_tracker/internal/store"
)

// Deps wires the handlers to the domain services. Set once in main.
type Deps struct {
	Fleet    *services.FleetService
	Trips    *services.TripService
	Manifest *services.ManifestService
	Query    *services.QueryService
	Users    store.UserStore
}

var deps Deps

func Init(d Deps) {
	deps = d
}

// requester rebuilds the session the JWT middleware stashed in the
// context. MustGet matches how the middleware always sets all three keys.
func requester(c *gin.Context) *services.Requester {
	return &services.Requester{
		ID:   uint(c.MustGet("user_id").(float64)),
		Name: asString(c.MustGet("name")),
		Role: asString(c.MustGet("role")),
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// writeError translates a domain error kind into the HTTP response.
func writeError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func parsePaging(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	return offset, limit
}
