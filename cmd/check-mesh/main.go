package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kdimtricp/facetrack/internal/config"
	"github.com/kdimtricp/facetrack/internal/database"
	"github.com/kdimtricp/facetrack/internal/mesh"
	"github.com/kdimtricp/facetrack/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	fmt.Println("Checking face analysis setup")
	fmt.Println("============================")

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.MeshTimeout)
	defer cancel()

	client := mesh.NewClient(cfg.MeshServiceURL, cfg.MeshTimeout)
	start := time.Now()
	if err := client.Ping(pingCtx); err != nil {
		fmt.Printf("Face-mesh service %s: unreachable (%v)\n", cfg.MeshServiceURL, err)
	} else {
		fmt.Printf("Face-mesh service %s: ok (%s)\n", cfg.MeshServiceURL, time.Since(start).Round(time.Millisecond))
	}

	if _, err := config.LoadProfiles(cfg.ThresholdsPath); err != nil {
		fmt.Printf("Thresholds: invalid (%v)\n", err)
	} else if cfg.ThresholdsPath == "" {
		fmt.Println("Thresholds: built-in defaults")
	} else {
		fmt.Printf("Thresholds: %s\n", cfg.ThresholdsPath)
	}
	fmt.Println()

	if _, err := os.Stat(cfg.DBPath); err != nil {
		fmt.Printf("No database at %s (nothing analysed yet)\n", cfg.DBPath)
		return
	}

	db, err := database.NewDB(database.Config{SQLitePath: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		log.Fatal("Failed to read schema version:", err)
	}
	if version == 0 {
		fmt.Println("Database has no schema yet, run migrate first")
		return
	}
	fmt.Printf("Schema version: %d (dirty=%t)\n", version, dirty)

	ctx := context.Background()
	analyses := database.NewAnalysisRepository(db)
	count, err := analyses.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count analyses:", err)
	}
	fmt.Printf("Total image analyses: %d\n", count)

	sessions, err := database.NewIntervalRepository(db).CountSessions(ctx)
	if err != nil {
		log.Fatal("Failed to count interview sessions:", err)
	}
	fmt.Printf("Interview sessions: %d\n\n", sessions)

	recent, err := analyses.Recent(ctx, 5)
	if err != nil {
		log.Fatal("Failed to load recent analyses:", err)
	}
	for _, a := range recent {
		fmt.Printf("%s  %-40s %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"), a.Image, metrics.LabelText(a.Labels))
	}
}
