package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaccinecare/internal/config"
	"vaccinecare/internal/controllers"
	"vaccinecare/internal/middleware"
	"vaccinecare/internal/models"
)

func TestAddWorker_HospitalNotFound(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")

	w := doRequest(r, http.MethodPost, "/api/hospital/addworker/42", map[string]interface{}{
		"name":           "Jane Doe",
		"age":            28,
		"contact_number": "5550300",
		"city":           "Surat",
		"state":          "Gujarat",
		"email":          "jane@example.com",
		"password":       "workerpass",
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddWorker_MissingField(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/api/hospital/addworker/%d", hospital.ID), map[string]interface{}{
		"name": "Jane Doe",
		"age":  28,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var workers, users int64
	config.DB.Model(&models.Worker{}).Count(&workers)
	config.DB.Model(&models.User{}).Count(&users)
	assert.Zero(t, workers)
	assert.Zero(t, users)
}

func TestAddWorker_CreatesPairedUser(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/api/hospital/addworker/%d", hospital.ID), map[string]interface{}{
		"name":           "Jane Doe",
		"qualification":  "RN",
		"age":            28,
		"contact_number": "5550300",
		"city":           "Surat",
		"state":          "Gujarat",
		"email":          "jane@example.com",
		"password":       "workerpass",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var worker models.Worker
	require.NoError(t, config.DB.Where("email = ?", "jane@example.com").First(&worker).Error)
	assert.Equal(t, hospital.ID, worker.HospitalID)

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, "healthcare_worker", user.Role)
	require.NotNil(t, user.WorkerID)
	assert.Equal(t, worker.ID, *user.WorkerID)
}

func TestGetAllWorkers(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")

	empty := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/getworker/%d", hospital.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, empty.Code)

	createWorker(t, hospital.ID, "jane", "Surat", "Gujarat")
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/getworker/%d", hospital.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["workers"], 1)
}

func TestSearchWorkers_ScopedToHospital(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	h1 := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")
	h2 := createHospital(t, "MetroHealth", "Pune", "Maharashtra", "metro@example.com")
	createWorker(t, h1.ID, "jane", "Surat", "Gujarat")
	createWorker(t, h2.ID, "janet", "Pune", "Maharashtra")

	w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/search-workers/%d?query=JAN", h1.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["workers"], 1)

	none := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/search-workers/%d?query=zzz", h1.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, none.Code)

	missing := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/search-workers/%d", h1.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func recordPayload(babyName, birthDate string, vaccineID, administeringID uint) map[string]interface{} {
	return map[string]interface{}{
		"name":              babyName,
		"birthdate":         birthDate,
		"vaccine_id":        vaccineID,
		"dose_number":       1,
		"date_administered": "2024-03-10",
		"hospital_id":       administeringID,
		"administered_by":   administeringID,
	}
}

func TestAddVaccineRecord_BabyNotFound(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	vaccine := seedVaccines(t)
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")

	w := doRequest(r, http.MethodPost, "/api/hospital/add-child-vaccine",
		recordPayload("Nobody", "2024-01-01", vaccine.ID, hospital.ID), token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	config.DB.Model(&models.VaccinationRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddVaccineRecord_HospitalBranch(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	vaccine := seedVaccines(t)
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")
	createBaby(t, "Asha", "2024-01-15")

	w := doRequest(r, http.MethodPost, "/api/hospital/add-child-vaccine",
		recordPayload("Asha", "2024-01-15", vaccine.ID, hospital.ID), token)
	require.Equal(t, http.StatusCreated, w.Code)

	var record models.VaccinationRecord
	require.NoError(t, config.DB.First(&record).Error)
	require.NotNil(t, record.HospitalID)
	assert.Equal(t, hospital.ID, *record.HospitalID)
	assert.Nil(t, record.WorkerID)
}

func TestAddVaccineRecord_FallsBackToWorkerBranch(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "healthcare_worker")
	vaccine := seedVaccines(t)
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")
	createWorker(t, hospital.ID, "jane", "Surat", "Gujarat")
	worker2 := createWorker(t, hospital.ID, "ravi", "Surat", "Gujarat")
	createBaby(t, "Asha", "2024-01-15")

	// worker2's id does not name any hospital, so the first branch must be
	// rejected by the store and the worker branch must land.
	require.NotEqual(t, hospital.ID, worker2.ID)

	w := doRequest(r, http.MethodPost, "/api/hospital/add-child-vaccine",
		recordPayload("Asha", "2024-01-15", vaccine.ID, worker2.ID), token)
	require.Equal(t, http.StatusCreated, w.Code)

	var record models.VaccinationRecord
	require.NoError(t, config.DB.First(&record).Error)
	assert.Nil(t, record.HospitalID)
	require.NotNil(t, record.WorkerID)
	assert.Equal(t, worker2.ID, *record.WorkerID)
}

func TestAddVaccineRecord_BothBranchesFail(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	vaccine := seedVaccines(t)
	createBaby(t, "Asha", "2024-01-15")

	// 999 names neither a hospital nor a worker.
	w := doRequest(r, http.MethodPost, "/api/hospital/add-child-vaccine",
		recordPayload("Asha", "2024-01-15", vaccine.ID, 999), token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	config.DB.Model(&models.VaccinationRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetChildrenByHospital(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	vaccine := seedVaccines(t)
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")
	baby := createBaby(t, "Asha", "2024-01-15")

	record := models.VaccinationRecord{
		BabyID:           baby.ID,
		VaccineID:        vaccine.ID,
		DoseNumber:       1,
		DateAdministered: "2024-03-10",
		HospitalID:       &hospital.ID,
		AdministeredBy:   hospital.ID,
	}
	require.NoError(t, config.DB.Create(&record).Error)

	w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/hospital/getchild/%d", hospital.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	children := decodeBody(t, w)["vaccinated_children"].([]interface{})
	require.Len(t, children, 1)
	child := children[0].(map[string]interface{})
	assert.Equal(t, "Asha", child["baby_name"])
	assert.Equal(t, "2024-01-15", child["baby_birthdate"])
	assert.Equal(t, vaccine.Name, child["vaccine_name"])

	none := doRequest(r, http.MethodGet, "/api/hospital/getchild/999", nil, token)
	assert.Equal(t, http.StatusNotFound, none.Code)
}

func TestFilterChildrenByDate(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	vaccine := seedVaccines(t)
	hospital := createHospital(t, "CityCare", "Surat", "Gujarat", "citycare@example.com")
	baby := createBaby(t, "Asha", "2024-01-15")

	record := models.VaccinationRecord{
		BabyID:           baby.ID,
		VaccineID:        vaccine.ID,
		DoseNumber:       1,
		DateAdministered: "2024-03-10",
		HospitalID:       &hospital.ID,
		AdministeredBy:   hospital.ID,
	}
	require.NoError(t, config.DB.Create(&record).Error)

	base := fmt.Sprintf("/api/hospital/search-child/%d", hospital.ID)

	inRange := doRequest(r, http.MethodGet, base+"?start_date=2024-03-01&end_date=2024-03-31", nil, token)
	require.Equal(t, http.StatusOK, inRange.Code)
	assert.Len(t, decodeBody(t, inRange)["vaccinated_children"], 1)

	outOfRange := doRequest(r, http.MethodGet, base+"?start_date=2024-04-01&end_date=2024-04-30", nil, token)
	assert.Equal(t, http.StatusNotFound, outOfRange.Code)

	missingDates := doRequest(r, http.MethodGet, base+"?start_date=2024-03-01", nil, token)
	assert.Equal(t, http.StatusBadRequest, missingDates.Code)
}

func TestGetAllVaccines(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")

	empty := doRequest(r, http.MethodGet, "/api/hospital/all-vaccine", nil, token)
	assert.Equal(t, http.StatusNotFound, empty.Code)

	seedVaccines(t)
	w := doRequest(r, http.MethodGet, "/api/hospital/all-vaccine", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["vaccines"])
}

// fakeUploader stands in for the media host.
type fakeUploader struct {
	url string
	err error
}

func (f fakeUploader) Upload(ctx context.Context, path string) (string, error) {
	return f.url, f.err
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	return req
}

func TestUploadCertificate(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	controllers.MediaUploader = fakeUploader{url: "https://cdn.example.com/cert.png"}

	req := multipartRequest(t, "/api/hospital/upload-certificate", "file", "cert.png", []byte("png-bytes"), token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn.example.com/cert.png", decodeBody(t, w)["file_url"])
}

func TestUploadCertificate_MissingFile(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	controllers.MediaUploader = fakeUploader{url: "https://cdn.example.com/cert.png"}

	req := multipartRequest(t, "/api/hospital/upload-certificate", "attachment", "cert.png", []byte("png-bytes"), token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCertificate_UpstreamFailure(t *testing.T) {
	r := setupTest(t)
	token := tokenFor(t, 1, "hospital")
	controllers.MediaUploader = fakeUploader{err: errors.New("remote unavailable")}

	req := multipartRequest(t, "/api/hospital/upload-certificate", "file", "cert.png", []byte("png-bytes"), token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
