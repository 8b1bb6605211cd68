// Package client is the Go consumer of the vaccinecare API: a cookie-jar
// HTTP client plus a durable session cache with bootstrap-then-hydrate
// semantics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Client talks to the backend. The auth token lives in the cookie jar, never
// in application state.
type Client struct {
	baseURL   string
	http      *http.Client
	cacheFile string

	mu      sync.Mutex
	session Session
}

// New builds a client against baseURL, hydrating the session from the cache
// file if one exists. The cached identity stays unverified until Bootstrap
// confirms it against the server.
func New(baseURL, cacheFile string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Jar: jar, Timeout: 15 * time.Second},
		cacheFile: cacheFile,
		session:   loadSession(cacheFile),
	}, nil
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Bootstrap re-derives the session from the server using the cookie. On
// success the cached user is replaced and marked verified; on failure the
// cached user is kept but stays unverified.
func (c *Client) Bootstrap(ctx context.Context) error {
	var resp struct {
		User *User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.session.Verified = false
		return err
	}
	c.session = Session{User: resp.User, Authenticated: true, Verified: true}
	return saveSession(c.cacheFile, c.session)
}

// Login authenticates, stores the returned user and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = Session{User: resp.User, Authenticated: true, Verified: true}
	if err := saveSession(c.cacheFile, c.session); err != nil {
		return resp.User, err
	}
	return resp.User, nil
}

// Logout clears the server cookie and the local cache.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/users/logout", nil, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = Session{}
	_ = os.Remove(c.cacheFile)
	return err
}

// Hospital and related response shapes, matching the backend envelopes.

type Hospital struct {
	ID            uint   `json:"ID"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

type Worker struct {
	ID            uint   `json:"ID"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Age           int    `json:"age"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
	Qualification string `json:"qualification"`
	HospitalID    uint   `json:"hospital_id"`
}

type Vaccine struct {
	ID               uint   `json:"ID"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	RecommendedDoses int    `json:"recommended_doses"`
}

type VaccinatedChild struct {
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

// Hospitals fetches every registered hospital (admin view).
func (c *Client) Hospitals(ctx context.Context) ([]Hospital, error) {
	var resp struct {
		Data []Hospital `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/hospitals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddHospitalRequest carries the admin's new-hospital form.
type AddHospitalRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactNumber string `json:"contact_number"`
	State         string `json:"state"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
}

func (c *Client) AddHospital(ctx context.Context, req AddHospitalRequest) (*Hospital, error) {
	var resp struct {
		Data *Hospital `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/addhospital", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) SearchHospitals(ctx context.Context, query string) ([]Hospital, error) {
	var resp struct {
		Data []Hospital `json:"data"`
	}
	path := "/api/users/search-hospital?query=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) Workers(ctx context.Context, hospitalID uint) ([]Worker, error) {
	var resp struct {
		Workers []Worker `json:"workers"`
	}
	path := fmt.Sprintf("/api/hospital/getworker/%d", hospitalID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Workers, nil
}

func (c *Client) SearchWorkers(ctx context.Context, hospitalID uint, query string) ([]Worker, error) {
	var resp struct {
		Workers []Worker `json:"workers"`
	}
	path := fmt.Sprintf("/api/hospital/search-workers/%d?query=%s", hospitalID, url.QueryEscape(query))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Workers, nil
}

// AddWorkerRequest carries a hospital's new-worker form.
type AddWorkerRequest struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification,omitempty"`
	Age           int    `json:"age"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

func (c *Client) AddWorker(ctx context.Context, hospitalID uint, req AddWorkerRequest) (*Worker, error) {
	var resp struct {
		Worker *Worker `json:"worker"`
	}
	path := fmt.Sprintf("/api/hospital/addworker/%d", hospitalID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Worker, nil
}

func (c *Client) Vaccines(ctx context.Context) ([]Vaccine, error) {
	var resp struct {
		Vaccines []Vaccine `json:"vaccines"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/hospital/all-vaccine", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vaccines, nil
}

// AddVaccineRecordRequest carries one vaccination event.
type AddVaccineRecordRequest struct {
	Name             string `json:"name"`
	BirthDate        string `json:"birthdate"`
	VaccineID        uint   `json:"vaccine_id"`
	DoseNumber       int    `json:"dose_number"`
	DateAdministered string `json:"date_administered"`
	HospitalID       uint   `json:"hospital_id"`
	AdministeredBy   uint   `json:"administered_by"`
	CertificateURL   string `json:"certificate_url,omitempty"`
}

func (c *Client) AddVaccineRecord(ctx context.Context, req AddVaccineRecordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/hospital/add-child-vaccine", req, nil)
}

func (c *Client) VaccinatedChildren(ctx context.Context, hospitalID uint) ([]VaccinatedChild, error) {
	var resp struct {
		Children []VaccinatedChild `json:"vaccinated_children"`
	}
	path := fmt.Sprintf("/api/hospital/getchild/%d", hospitalID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Children, nil
}

// UploadCertificate streams a local file to the certificate endpoint and
// returns its hosted URL.
func (c *Client) UploadCertificate(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/hospital/upload-certificate", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var resp struct {
		FileURL string `json:"file_url"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %s", resp.Message)
	}
	return resp.FileURL, nil
}

// doJSON issues one request and decodes the JSON response envelope into out.
// Non-2xx responses become errors carrying the server's error message.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
