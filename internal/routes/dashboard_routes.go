package routes

import (
	"vaccinecare/internal/controllers"
	"vaccinecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

// DashboardRoutes keeps the original frontend's "deshboard" spelling; the
// deployed clients request these exact paths.
func DashboardRoutes(r *gin.Engine) {
	admin := r.Group("/api/deshboard")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole("admin"))
	{
		admin.GET("/admin", controllers.GetAdminDashboard)
		admin.GET("/search-workers", controllers.SearchWorkersGlobal)
		admin.GET("/search-hospital", controllers.SearchHospitalGlobal)
	}

	scoped := r.Group("/api/deshboard")
	scoped.Use(middleware.RequireAuth(), middleware.RequireRole("hospital", "healthcare_worker", "admin"))
	{
		scoped.GET("/hospital/:id", controllers.GetHospitalDashboard)
		scoped.GET("/search-workers/:id", controllers.SearchWorkerInHospital)
	}
}
