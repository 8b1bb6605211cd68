package models

import "gorm.io/gorm"

// Hospital is created by an admin together with a paired "hospital" User row
// and is read-only afterward.
type Hospital struct {
	gorm.Model
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email" gorm:"uniqueIndex"`

	Workers []Worker `gorm:"foreignKey:HospitalID" json:"workers,omitempty"`
}
