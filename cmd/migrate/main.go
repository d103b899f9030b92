package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/database"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-dir migrations] up|down|version\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	dir := flag.String("dir", "", "migrations directory (searched upwards from the working directory when empty)")
	flag.Usage = usage
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugln("no .env file found")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	migrationsDir := *dir
	if migrationsDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatal(err)
		}
		if migrationsDir, err = database.FindMigrationsDir(cwd); err != nil {
			log.Fatal(err)
		}
	}
	logger := log.WithFields(log.Fields{"dir": migrationsDir, "command": command})

	switch command {
	case "up", "down":
		if err := database.Migrate(dbURL, migrationsDir, command == "down"); err != nil {
			logger.Fatalf("migration failed: %s", err)
		}
		logger.Info("migration finished")
	case "version":
		version, dirty, ok, err := database.MigrationVersion(dbURL, migrationsDir)
		if err != nil {
			logger.Fatalf("read schema version: %s", err)
		}
		if !ok {
			logger.Info("no migrations applied")
			return
		}
		logger.WithField("dirty", dirty).Infof("schema at version %d", version)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
