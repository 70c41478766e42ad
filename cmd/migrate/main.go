package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kdimtricp/facetrack/internal/database"
)

func main() {
	var (
		dbPath = flag.String("db", "./facetrack.db", "Path to the sqlite database")
		down   = flag.Bool("down", false, "Roll back the latest migration")
		status = flag.Bool("status", false, "Show migration status only")
		force  = flag.Int("force", -1, "Mark the given version as applied and clean, without running it")
	)
	flag.Parse()

	// Override with environment variables if set
	if env := os.Getenv("DB_PATH"); env != "" {
		*dbPath = env
	}

	db, err := database.NewDB(database.Config{SQLitePath: *dbPath})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	switch {
	case *status:
		version, dirty, err := db.MigrateVersion()
		if err != nil {
			log.Fatal("Failed to read migration version:", err)
		}

		fmt.Println("Migration Status:")
		fmt.Println("=================")
		if version == 0 {
			fmt.Println("No migrations applied")
			return
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		fmt.Printf("Version %d [%s]\n", version, state)
	case *force >= 0:
		if err := db.MigrateForce(*force); err != nil {
			log.Fatal("Failed to force version:", err)
		}
		fmt.Printf("Forced version %d\n", *force)
	case *down:
		fmt.Println("Rolling back latest migration...")
		if err := db.MigrateDown(); err != nil {
			log.Fatal("Failed to roll back:", err)
		}
		fmt.Println("Rollback completed successfully!")
	default:
		fmt.Printf("Running migrations on %s...\n", *dbPath)
		if err := db.MigrateUp(); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		fmt.Println("Migrations completed successfully!")
	}
}
