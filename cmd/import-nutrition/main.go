package main

import (
	"context"
	"flag"
	"os"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/config"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/database"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/logging"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
		Environment:   cfg.AppEnv,
	})

	file := flag.String("file", cfg.NutritionImportSource, "path to the nutrition reference JSON")
	flag.Parse()

	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open %s: %s", *file, err)
	}
	items, err := services.ParseNutritionFile(f)
	_ = f.Close()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, database.PoolParams{DBUrl: cfg.DBUrl, MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Fatalf("failed to connect to database: %s", err)
	}
	defer pool.Close()

	importer := services.NewNutritionImporter(repository.NewNutritionRepository(pool))
	stats, err := importer.Import(ctx, items)
	if err != nil {
		log.WithField("inserted", stats.Inserted).Fatalf("import failed: %s", err)
	}
	log.WithFields(log.Fields{
		"file":     *file,
		"inserted": stats.Inserted,
		"skipped":  stats.Skipped,
	}).Info("nutrition import finished")
}
