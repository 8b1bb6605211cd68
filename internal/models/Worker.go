package models

import "gorm.io/gorm"

type Worker struct {
	gorm.Model
	Name          string `json:"name"`
	Email         string `json:"email"`
	Age           int    `json:"age"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
	Qualification string `json:"qualification"`

	HospitalID uint     `json:"hospital_id" gorm:"index"`
	Hospital   Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}
