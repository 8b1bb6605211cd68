package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every environment-derived setting the service consumes.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret      string
	Port           string
	FrontendOrigin string
	CloudinaryURL  string
	AppEnv         string
}

// Load reads .env (if present) and builds the Config from environment
// variables with development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "vaccinecare"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret:      getEnv("JWT_SECRET", "supersecret"),
		Port:           getEnv("PORT", "8000"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		CloudinaryURL:  getEnv("CLOUDINARY_URL", ""),
		AppEnv:         getEnv("APP_ENV", "development"),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
