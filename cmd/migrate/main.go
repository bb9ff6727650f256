package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/tradeops/backend/internal/infrastructure/config"
	"github.com/tradeops/backend/internal/infrastructure/logger"
	"github.com/tradeops/backend/internal/infrastructure/persistence"
)

// Applies the schema to the configured database and exits. Useful for
// deployments where the server runs without DDL privileges.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	gormLog := logger.NewGormLogger(log, cfg.Log.Level)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migrations applied",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)
}
