package main

import (
	"log"
	"net/http"
	"os"

	"github.com/kdimtricp/facetrack/internal/api"
	"github.com/kdimtricp/facetrack/internal/config"
	"github.com/kdimtricp/facetrack/internal/database"
	"github.com/kdimtricp/facetrack/internal/mesh"
	"github.com/kdimtricp/facetrack/internal/metrics"
	"github.com/kdimtricp/facetrack/internal/processing"
	"github.com/kdimtricp/facetrack/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	profiles, err := config.LoadProfiles(cfg.ThresholdsPath)
	if err != nil {
		log.Fatal("Failed to load thresholds:", err)
	}

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	db, err := database.NewDB(database.Config{SQLitePath: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	log.Printf("Running database migrations on %s", cfg.DBPath)
	if err := db.MigrateUp(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	analyses := database.NewAnalysisRepository(db)

	pipeline := &processing.Pipeline{
		Detector:  mesh.NewClient(cfg.MeshServiceURL, cfg.MeshTimeout),
		Storage:   localStorage,
		Profile:   profiles.Image,
		Analyses:  analyses,
		CSV:       metrics.NewImageLog(cfg.ImageCSVPath()),
		MaxWidth:  cfg.DisplayMaxWidth,
		MaxHeight: cfg.DisplayMaxHeight,
		Limiter:   processing.NewLimiter(1),
	}

	app := &api.App{
		Pipeline:      pipeline,
		Storage:       localStorage,
		History:       analyses,
		CSVPath:       cfg.ImageCSVPath(),
		MaxUploadSize: cfg.MaxUploadSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Upload directory: %s", cfg.UploadDir)
	log.Printf("Image CSV: %s", cfg.ImageCSVPath())
	log.Printf("Face-mesh service: %s (timeout %s)", cfg.MeshServiceURL, cfg.MeshTimeout)
	log.Printf("Max upload size: %d bytes", cfg.MaxUploadSize)

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
