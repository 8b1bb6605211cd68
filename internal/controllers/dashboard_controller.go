package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"vaccinecare/internal/config"
	"vaccinecare/internal/models"
)

type hospitalSummary struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type workerSummary struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Qualification string `json:"qualification"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
	Email         string `json:"email,omitempty"`
	HospitalName  string `json:"hospital_name,omitempty"`
	HospitalCity  string `json:"hospital_city,omitempty"`
	HospitalState string `json:"hospital_state,omitempty"`
}

func summarizeHospitals(hospitals []models.Hospital) []hospitalSummary {
	list := make([]hospitalSummary, 0, len(hospitals))
	for _, h := range hospitals {
		list = append(list, hospitalSummary{Name: h.Name, City: h.City, State: h.State})
	}
	return list
}

func summarizeWorkers(workers []models.Worker, withEmail bool) []workerSummary {
	list := make([]workerSummary, 0, len(workers))
	for _, w := range workers {
		s := workerSummary{
			Name:          w.Name,
			Age:           w.Age,
			Qualification: w.Qualification,
			ContactNumber: w.ContactNumber,
			City:          w.City,
			State:         w.State,
			HospitalName:  "Unknown",
			HospitalCity:  "Unknown",
			HospitalState: "Unknown",
		}
		if withEmail {
			s.Email = w.Email
		}
		if w.Hospital.ID != 0 {
			s.HospitalName = w.Hospital.Name
			s.HospitalCity = w.Hospital.City
			s.HospitalState = w.Hospital.State
		}
		list = append(list, s)
	}
	return list
}

// GetAdminDashboard aggregates the global counts and lists shown on the admin
// landing page. The three queries run sequentially; any failure aborts the
// aggregation and partial results are discarded.
func GetAdminDashboard(c *gin.Context) {
	var hospitals []models.Hospital
	if err := config.DB.Find(&hospitals).Error; err != nil {
		logrus.WithError(err).Error("admin dashboard: hospitals query failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not load dashboard data"})
		return
	}

	var workers []models.Worker
	if err := config.DB.Preload("Hospital").Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("admin dashboard: workers query failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not load dashboard data"})
		return
	}

	var recordCount int64
	if err := config.DB.Model(&models.VaccinationRecord{}).Count(&recordCount).Error; err != nil {
		logrus.WithError(err).Error("admin dashboard: record count failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not load dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hospitals_count":       len(hospitals),
		"workers_count":         len(workers),
		"vaccine_records_count": recordCount,
		"hospitals_list":        summarizeHospitals(hospitals),
		"workers_list":          summarizeWorkers(workers, false),
	})
}

// SearchWorkersGlobal matches workers across every hospital by name, city or
// state. An empty match is a 200 with an empty list.
func SearchWorkersGlobal(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	pattern := ciPattern(query)
	var workers []models.Worker
	if err := config.DB.
		Preload("Hospital").
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?", pattern, pattern, pattern).
		Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("global worker search failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not search workers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers_list": summarizeWorkers(workers, false)})
}

// SearchHospitalGlobal matches hospitals by name, city or state. An empty
// match is a 200 with an empty list.
func SearchHospitalGlobal(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	pattern := ciPattern(query)
	var hospitals []models.Hospital
	if err := config.DB.
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?", pattern, pattern, pattern).
		Find(&hospitals).Error; err != nil {
		logrus.WithError(err).Error("global hospital search failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not search hospitals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hospitals_list": summarizeHospitals(hospitals)})
}

// GetHospitalDashboard aggregates one hospital's worker list and its
// vaccination record count.
func GetHospitalDashboard(c *gin.Context) {
	hospitalID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID."})
		return
	}

	var workers []models.Worker
	if err := config.DB.
		Preload("Hospital").
		Where("hospital_id = ?", hospitalID).
		Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("hospital dashboard: workers query failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not load dashboard data"})
		return
	}

	var recordCount int64
	if err := config.DB.
		Model(&models.VaccinationRecord{}).
		Where("hospital_id = ?", hospitalID).
		Count(&recordCount).Error; err != nil {
		logrus.WithError(err).Error("hospital dashboard: record count failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not load dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workers_count":         len(workers),
		"vaccine_records_count": recordCount,
		"workers_list":          summarizeWorkers(workers, true),
	})
}

// SearchWorkerInHospital matches one hospital's workers by name, city or
// state. An empty match is a 200 with an empty list.
func SearchWorkerInHospital(c *gin.Context) {
	hospitalID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID."})
		return
	}
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	pattern := ciPattern(query)
	var workers []models.Worker
	if err := config.DB.
		Where("hospital_id = ?", hospitalID).
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?", pattern, pattern, pattern).
		Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("scoped worker search failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not search workers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers_list": summarizeWorkers(workers, false)})
}
