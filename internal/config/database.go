package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vaccinecare/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB opens the Postgres connection, migrates the schema and seeds the
// vaccine catalog. The store owns all persistent state; nothing is cached
// in memory between requests.
func InitDB(cfg *Config) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	if err := SeedVaccines(db); err != nil {
		log.Fatalf("vaccine catalog seeding failed: %v", err)
	}

	DB = db
}

// Migrate applies the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Hospital{},
		&models.Worker{},
		&models.User{},
		&models.Baby{},
		&models.Vaccine{},
		&models.VaccinationRecord{},
	)
}

// SeedVaccines inserts the standard immunization catalog once. The catalog is
// reference data and never written by any request handler.
func SeedVaccines(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vaccine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := []models.Vaccine{
		{Name: "BCG", Description: "Bacillus Calmette-Guerin, against tuberculosis", RecommendedDoses: 1},
		{Name: "Hepatitis B", Description: "Hepatitis B vaccine", RecommendedDoses: 3},
		{Name: "OPV", Description: "Oral polio vaccine", RecommendedDoses: 4},
		{Name: "DTP", Description: "Diphtheria, tetanus and pertussis", RecommendedDoses: 3},
		{Name: "MMR", Description: "Measles, mumps and rubella", RecommendedDoses: 2},
		{Name: "Rotavirus", Description: "Rotavirus vaccine", RecommendedDoses: 2},
	}
	return db.Create(&catalog).Error
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
