package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"cyclesync/internal"
	"cyclesync/internal/api"
	"cyclesync/internal/config"
	"cyclesync/internal/errors"
	"cyclesync/internal/migration"
	"cyclesync/internal/storage/postgres"
)

var logger = internal.DefaultLogger

func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	logger.Info("database ready at migration version %s", migrator.Version())

	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	repos := api.Repositories{
		Cycles:       postgres.NewCycleRepository(db),
		Predictions:  postgres.NewPredictionRepository(db),
		Observations: postgres.NewObservationRepository(db),
	}

	server := api.NewServer(appConfig, repos)
	logger.Info("listening on :%s", appConfig.Server.Port)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
