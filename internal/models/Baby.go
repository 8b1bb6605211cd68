package models

import "gorm.io/gorm"

// Baby rows arrive from an external birth-registration feed. This service
// only looks them up by exact name + birth date when recording a vaccination.
type Baby struct {
	gorm.Model
	Name       string `json:"name" gorm:"index:idx_babies_name_birth_date"`
	BirthDate  string `json:"birth_date" gorm:"type:date;index:idx_babies_name_birth_date"`
	Birthplace string `json:"birthplace"`
	Gender     string `json:"gender"`
}
