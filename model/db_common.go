package model

import (
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the main entry point of the model. It wraps the gorm handle and
// the configuration the application was started with.
type Store struct {
	db     *gorm.DB
	Config *Config
}

// NewStore wraps an already opened gorm database. It does not migrate.
func NewStore(db *gorm.DB, cfg *Config) *Store {
	return &Store{db: db, Config: cfg}
}

// AutoMigrate creates or updates the tables for all models.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Client{}); err != nil {
		return err
	}
	if err := s.db.AutoMigrate(&Contact{}); err != nil {
		return err
	}
	return nil
}

// Dialect returns the name of the database dialect ("sqlite", "postgres").
func (s *Store) Dialect() string {
	return s.db.Dialector.Name()
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// shared helper for GORM logger
func gormLoggerFor(cfg *Config, svr Server) *gorm.Config {
	gormConfig := &gorm.Config{TranslateError: true}
	switch svr.DBLogger {
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	default:
		if cfg.Mode == ModeDevelopment {
			gormConfig.Logger = logger.Default.LogMode(logger.Info)
		} else {
			gormConfig.Logger = logger.Default.LogMode(logger.Silent)
		}
	}
	return gormConfig
}
