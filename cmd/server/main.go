package main

import (
	"log"
	"net/http"

	"vaccinecare/internal/config"
	"vaccinecare/internal/controllers"
	"vaccinecare/internal/logger"
	"vaccinecare/internal/media"
	"vaccinecare/internal/middleware"
	"vaccinecare/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	cfg := config.Load()

	// Connect to the database, migrate and seed the vaccine catalog
	config.InitDB(cfg)

	// Certificate uploads go to the media host
	uploader, err := media.New(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("media client init failed: %v", err)
	}
	controllers.MediaUploader = uploader

	r := routes.SetupRouter()

	// Wrap with CORS for the frontend origin
	handler := middleware.EnableCORS(r, cfg.FrontendOrigin)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
