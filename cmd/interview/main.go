package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kdimtricp/facetrack/internal/config"
	"github.com/kdimtricp/facetrack/internal/database"
	"github.com/kdimtricp/facetrack/internal/interview"
	"github.com/kdimtricp/facetrack/internal/mesh"
	"github.com/kdimtricp/facetrack/internal/metrics"
)

func main() {
	var (
		source     = flag.String("source", "unix:/tmp/facemesh.sock", "Landmark frame stream: unix:<socket>, a file path, or - for stdin")
		dataDir    = flag.String("data-dir", getEnv("DATA_DIR", "./data"), "Directory for the session CSV")
		dbPath     = flag.String("db", getEnv("DB_PATH", "./facetrack.db"), "Path to the sqlite database, empty to skip")
		thresholds = flag.String("thresholds", config.ThresholdsPath(), "Thresholds JSON file")
		record     = flag.String("record", "", "Also write the received frames to this file for replay with -source")
	)
	flag.Parse()

	profiles, err := config.LoadProfiles(*thresholds)
	if err != nil {
		log.Fatal("Failed to load thresholds:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := openSource(*source)
	if err != nil {
		log.Fatal("Failed to open frame source:", err)
	}
	defer stream.Close()
	// Unblock a pending read on shutdown.
	go func() {
		<-ctx.Done()
		stream.Close()
	}()

	session := interview.NewSession(interview.Options{Profile: profiles.Video})

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}
	csvLog := metrics.NewIntervalLog(*dataDir, session.Started())
	sinks := []interview.Sink{interview.CSVSink(csvLog)}

	if *dbPath != "" {
		db, err := database.NewDB(database.Config{SQLitePath: *dbPath})
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		defer db.Close()
		if err := db.MigrateUp(); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		sinks = append(sinks, interview.StoreSink(database.NewIntervalRepository(db)))
	}

	var frames interview.FrameSource = mesh.NewStreamReader(stream)
	if *record != "" {
		out, err := os.Create(*record)
		if err != nil {
			log.Fatal("Failed to create recording:", err)
		}
		defer out.Close()
		frames = interview.Tee(frames, mesh.NewStreamWriter(out))
	}

	log.Printf("Interview session %s started, reading %s", session.ID(), *source)
	if err := interview.Run(ctx, frames, session, sinks...); err != nil && ctx.Err() == nil {
		log.Printf("Frame stream failed: %v", err)
	}

	summary, err := session.Summary()
	if errors.Is(err, interview.ErrTooShort) {
		log.Printf("Session %s: %d frames, no data saved (session too short)", summary.SessionID, summary.Frames)
		return
	}

	fmt.Println("Session summary")
	fmt.Println("===============")
	fmt.Printf("Session:   %s\n", summary.SessionID)
	fmt.Printf("Duration:  %s\n", summary.Duration.Round(time.Second))
	fmt.Printf("Frames:    %d (%d with a face)\n", summary.Frames, summary.FacesSeen)
	fmt.Printf("Intervals: %d\n", summary.Intervals)
	fmt.Printf("Blinks/s:  %.2f ± %.2f\n", summary.MeanFrequency, summary.StdFrequency)
	for state, n := range summary.States {
		fmt.Printf("  %-9s %d\n", state, n)
	}
	fmt.Printf("Saved to %s\n", csvLog.Path())
}

func openSource(source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(source, "unix:"):
		return net.Dial("unix", strings.TrimPrefix(source, "unix:"))
	default:
		return os.Open(source)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
