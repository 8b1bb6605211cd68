package models

import "gorm.io/gorm"

// Vaccine is read-only catalog data, seeded at startup.
type Vaccine struct {
	gorm.Model
	Name             string `json:"name" gorm:"uniqueIndex"`
	Description      string `json:"description"`
	RecommendedDoses int    `json:"recommended_doses"`
}
