// Package initializer builds the process-wide dependencies from config.
package initializer

import (
	"fmt"
	"os"

	"github.com/amirasaad/vmadmin/infra"
	"github.com/amirasaad/vmadmin/infra/migrations"
	infrarepo "github.com/amirasaad/vmadmin/infra/repository"
	"github.com/amirasaad/vmadmin/pkg/app"
	"github.com/amirasaad/vmadmin/pkg/config"
	"gorm.io/gorm"
)

// InitializeDependencies sets up logging, opens the database, optionally
// migrates it and returns the dependencies the services need.
func InitializeDependencies(cfg *config.App) (*app.Deps, *gorm.DB, error) {
	logger := newLogger(os.Stdout, cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}

	if cfg.DB.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.MigrateUp(sqlDB); err != nil {
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
		state, err := migrations.Status(sqlDB)
		if err != nil {
			return nil, nil, fmt.Errorf("migration status: %w", err)
		}
		logger.Info("Database migrated", "version", state.Version)
	}

	return &app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, db, nil
}
