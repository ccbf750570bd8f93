package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.RequestID())

	AuthRoutes(r)
	OwnerRoutes(r)
	PoliceRoutes(r)

	return r
}
