package models

import "gorm.io/gorm"

// User is the login-capable identity for every actor. Admins stand alone;
// hospital and healthcare_worker users carry a reference to the domain row
// they were paired with at creation time.
type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	PhoneNumber  string `json:"phone_number"`
	Role         string `json:"role"` // "admin", "hospital", "healthcare_worker"

	HospitalID *uint     `json:"hospital_id,omitempty"`
	WorkerID   *uint     `json:"worker_id,omitempty"`
	Hospital   *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Worker     *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
