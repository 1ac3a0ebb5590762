package database

import (
	"context"
	"fmt"

	"github.com/lshigami/trivia-api/config"
	"github.com/lshigami/trivia-api/internal/model"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres pool and ties its lifetime to the fx app.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Failed to connect to database")
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB handle: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
			log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Database connected")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing database connection pool")
			return sqlDB.Close()
		},
	})

	return db, nil
}

// AutoMigrate creates the questions and categories tables when they are
// missing. Real deployments load the schema and seed data separately.
func AutoMigrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.AutoMigrate {
		log.Info().Msg("Database auto-migration disabled")
		return nil
	}
	log.Info().Msg("Running database migrations for trivia models...")
	if err := db.AutoMigrate(&model.Category{}, &model.Question{}); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
