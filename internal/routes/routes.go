package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every route table onto a fresh engine.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginlogger.SetLogger())
	r.Use(gin.Recovery())

	UserRoutes(r)
	HospitalRoutes(r)
	DashboardRoutes(r)

	return r
}
