package routes

import (
	"vaccinecare/internal/controllers"
	"vaccinecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	{
		users.POST("/admin", controllers.CreateAdminUser)
		users.POST("/login", controllers.Login)
		users.POST("/logout", controllers.Logout)
	}

	session := r.Group("/api/users")
	session.Use(middleware.RequireAuth())
	{
		session.GET("/me", controllers.CurrentUser)
	}

	admin := r.Group("/api/users")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole("admin"))
	{
		admin.GET("/hospitals", controllers.GetHospitals)
		admin.POST("/addhospital", controllers.AddHospital)
		admin.GET("/search-hospital", controllers.SearchHospitals)
	}
}
