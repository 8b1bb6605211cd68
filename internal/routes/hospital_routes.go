package routes

import (
	"vaccinecare/internal/controllers"
	"vaccinecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func HospitalRoutes(r *gin.Engine) {
	hospital := r.Group("/api/hospital")
	hospital.Use(middleware.RequireAuth(), middleware.RequireRole("hospital", "healthcare_worker", "admin"))
	{
		hospital.POST("/addworker/:hospital_id", controllers.AddWorker)
		hospital.GET("/getworker/:hospital_id", controllers.GetAllWorkers)
		hospital.GET("/search-workers/:hospital_id", controllers.SearchWorkers)
		hospital.POST("/add-child-vaccine", controllers.AddVaccineRecord)
		hospital.GET("/getchild/:hospital_id", controllers.GetChildrenByHospital)
		hospital.GET("/search-child/:hospital_id", controllers.FilterChildrenByDate)
		hospital.POST("/upload-certificate", controllers.UploadCertificate)
		hospital.GET("/all-vaccine", controllers.GetAllVaccines)
	}
}
