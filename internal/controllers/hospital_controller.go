package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"vaccinecare/internal/config"
	"vaccinecare/internal/media"
	"vaccinecare/internal/models"
)

// MediaUploader is the certificate file store. Wired in main; tests swap in
// a fake.
var MediaUploader media.Uploader

type workerInput struct {
	Name          string `json:"name" binding:"required"`
	Qualification string `json:"qualification"`
	Age           int    `json:"age" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
}

// AddWorker registers a healthcare worker under the hospital in the path,
// creating the Worker row and its paired login User in one transaction.
func AddWorker(c *gin.Context) {
	hospitalID, err := parseID(c.Param("hospital_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID."})
		return
	}

	var input workerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	var hospital models.Hospital
	if err := config.DB.First(&hospital, hospitalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found."})
			return
		}
		logrus.WithError(err).Error("could not fetch hospital")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify hospital"})
		return
	}

	if emailTaken(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	worker := models.Worker{
		Name:          input.Name,
		Email:         input.Email,
		Age:           input.Age,
		ContactNumber: input.ContactNumber,
		City:          input.City,
		State:         input.State,
		Qualification: input.Qualification,
		HospitalID:    hospital.ID,
	}
	if err := tx.Create(&worker).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("could not create worker")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create worker"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		PhoneNumber:  input.ContactNumber,
		Role:         "healthcare_worker",
		WorkerID:     &worker.ID,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		logrus.WithError(err).Error("could not create worker login user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create worker login"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		logrus.WithError(err).Error("could not commit worker creation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create worker"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Worker added successfully",
		"worker":  worker,
		"user":    user,
	})
}

// GetAllWorkers lists the workers of one hospital.
func GetAllWorkers(c *gin.Context) {
	hospitalID, err := parseID(c.Param("hospital_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hospital ID is required."})
		return
	}

	var workers []models.Worker
	if err := config.DB.Where("hospital_id = ?", hospitalID).Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("could not list workers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch workers"})
		return
	}

	if len(workers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No workers found for this hospital."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// SearchWorkers matches a hospital's workers by name, city or contact number,
// case-insensitively.
func SearchWorkers(c *gin.Context) {
	hospitalID, err := parseID(c.Param("hospital_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hospital ID is required."})
		return
	}
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required."})
		return
	}

	pattern := ciPattern(query)
	var workers []models.Worker
	if err := config.DB.
		Where("hospital_id = ?", hospitalID).
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(contact_number) LIKE ?", pattern, pattern, pattern).
		Find(&workers).Error; err != nil {
		logrus.WithError(err).Error("worker search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search workers"})
		return
	}

	if len(workers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No workers found matching the search criteria."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

type vaccineRecordInput struct {
	Name             string `json:"name" binding:"required"`
	BirthDate        string `json:"birthdate" binding:"required"`
	VaccineID        uint   `json:"vaccine_id" binding:"required"`
	DoseNumber       int    `json:"dose_number" binding:"required"`
	DateAdministered string `json:"date_administered" binding:"required"`
	HospitalID       uint   `json:"hospital_id" binding:"required"`
	AdministeredBy   uint   `json:"administered_by" binding:"required"`
	CertificateURL   string `json:"certificate_url"`
}

// AddVaccineRecord logs one vaccination event for an already-registered baby.
//
// The administering entity id arrives in hospital_id regardless of whether it
// names a hospital or a worker, so insertion is a two-branch policy: write it
// as the hospital reference first, and if the store rejects that, retry once
// writing it as the worker reference. The second failure is the one surfaced.
func AddVaccineRecord(c *gin.Context) {
	var input vaccineRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	var baby models.Baby
	if err := config.DB.
		Where("name = ? AND birth_date = ?", input.Name, input.BirthDate).
		First(&baby).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby not found."})
			return
		}
		logrus.WithError(err).Error("could not look up baby")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up baby"})
		return
	}

	record, err := insertRecordAsHospital(input, baby.ID)
	if err != nil {
		logrus.WithError(err).Warn("vaccination insert with hospital reference failed, retrying as worker reference")
		record, err = insertRecordAsWorker(input, baby.ID)
		if err != nil {
			logrus.WithError(err).Error("vaccination insert failed on both branches")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add vaccine record"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vaccine record added successfully", "record": record})
}

// insertRecordAsHospital treats the administering id as a hospital reference.
func insertRecordAsHospital(input vaccineRecordInput, babyID uint) (*models.VaccinationRecord, error) {
	record := models.VaccinationRecord{
		BabyID:           babyID,
		VaccineID:        input.VaccineID,
		DoseNumber:       input.DoseNumber,
		DateAdministered: input.DateAdministered,
		HospitalID:       &input.HospitalID,
		AdministeredBy:   input.AdministeredBy,
		CertificateURL:   input.CertificateURL,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// insertRecordAsWorker treats the administering id as a worker reference.
func insertRecordAsWorker(input vaccineRecordInput, babyID uint) (*models.VaccinationRecord, error) {
	record := models.VaccinationRecord{
		BabyID:           babyID,
		VaccineID:        input.VaccineID,
		DoseNumber:       input.DoseNumber,
		DateAdministered: input.DateAdministered,
		WorkerID:         &input.HospitalID,
		AdministeredBy:   input.AdministeredBy,
		CertificateURL:   input.CertificateURL,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// vaccinatedChild is the flattened row shape the dashboards render.
type vaccinatedChild struct {
	BabyID           uint   `json:"baby_id"`
	BabyName         string `json:"baby_name"`
	BabyBirthdate    string `json:"baby_birthdate"`
	BabyGender       string `json:"baby_gender"`
	Birthplace       string `json:"birthplace"`
	VaccineID        uint   `json:"vaccine_id"`
	VaccineName      string `json:"vaccine_name"`
	DoseNumber       int    `json:"dose_number"`
	DateAdministered string `json:"date_administered"`
	HospitalID       *uint  `json:"hospital_id"`
	CertificateURL   string `json:"certificate_url"`
}

func flattenRecords(records []models.VaccinationRecord) []vaccinatedChild {
	children := make([]vaccinatedChild, 0, len(records))
	for _, r := range records {
		children = append(children, vaccinatedChild{
			BabyID:           r.BabyID,
			BabyName:         r.Baby.Name,
			BabyBirthdate:    r.Baby.BirthDate,
			BabyGender:       r.Baby.Gender,
			Birthplace:       r.Baby.Birthplace,
			VaccineID:        r.VaccineID,
			VaccineName:      r.Vaccine.Name,
			DoseNumber:       r.DoseNumber,
			DateAdministered: r.DateAdministered,
			HospitalID:       r.HospitalID,
			CertificateURL:   r.CertificateURL,
		})
	}
	return children
}

// GetChildrenByHospital lists vaccinated children recorded under the given
// id, whether it landed as a hospital or a worker reference.
func GetChildrenByHospital(c *gin.Context) {
	hospitalID, err := parseID(c.Param("hospital_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hospital ID is required."})
		return
	}

	var records []models.VaccinationRecord
	if err := config.DB.
		Preload("Baby").
		Preload("Vaccine").
		Where("hospital_id = ? OR worker_id = ?", hospitalID, hospitalID).
		Find(&records).Error; err != nil {
		logrus.WithError(err).Error("could not fetch vaccination records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch records"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No vaccinated children found for this hospital."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vaccinated_children": flattenRecords(records)})
}

// FilterChildrenByDate narrows a hospital's vaccination records to an
// administration date range (inclusive, ISO dates).
func FilterChildrenByDate(c *gin.Context) {
	hospitalID, err := parseID(c.Param("hospital_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hospital ID is required."})
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both start_date and end_date are required."})
		return
	}

	var records []models.VaccinationRecord
	if err := config.DB.
		Preload("Baby").
		Preload("Vaccine").
		Where("(administered_by = ? OR worker_id = ?) AND date_administered >= ? AND date_administered <= ?",
			hospitalID, hospitalID, startDate, endDate).
		Find(&records).Error; err != nil {
		logrus.WithError(err).Error("could not filter vaccination records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch records"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No vaccinated children found for the given hospital and date range."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vaccinated_children": flattenRecords(records)})
}

// UploadCertificate receives one multipart file, stores it on the media host
// and returns its public URL. The temporary copy is always removed.
func UploadCertificate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please upload a file."})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("cert_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		logrus.WithError(err).Error("could not save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload file."})
		return
	}
	defer os.Remove(tmpPath)

	url, err := MediaUploader.Upload(c.Request.Context(), tmpPath)
	if err != nil {
		logrus.WithError(err).Error("media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload file."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully.",
		"file_url": url,
	})
}

// GetAllVaccines returns the immunization catalog.
func GetAllVaccines(c *gin.Context) {
	var vaccines []models.Vaccine
	if err := config.DB.Find(&vaccines).Error; err != nil {
		logrus.WithError(err).Error("could not list vaccines")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch vaccines"})
		return
	}

	if len(vaccines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No vaccines found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vaccines": vaccines})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
