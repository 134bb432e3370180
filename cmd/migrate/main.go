package main

import (
	"flag"

	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
)

func main() {
	_ = godotenv.Load()

	rollback := flag.Bool("rollback", false, "Rollback the last SQL migration")
	dir := flag.String("dir", "migrations", "Directory holding the .sql migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close(db)

	if *rollback {
		name, err := database.RollbackLast(db, *dir)
		if err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
		logging.Info().Str("migration", name).Msg("rolled back migration")
		return
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Msg("all migrations applied")
}
