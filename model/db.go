package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDatabase opens the database for the configured mode and migrates the
// schema.
func InitDatabase(cfg *Config) (*Store, error) {
	var err error
	var db *gorm.DB

	svr := cfg.Server()
	switch svr.Database {
	case "sqlite3":
		filename := svr.DBName
		if !filepath.IsAbs(filename) {
			filename = filepath.Join("db", filename)
		}
		if err = os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return nil, err
		}
		slog.Info("use sqlite database", "file", filename)
		db, err = gorm.Open(sqlite.Open(filename+"?_pragma=foreign_keys(1)"), gormLoggerFor(cfg, svr))
	case "postgresql":
		slog.Info("use postgresql database", "host", svr.DBHost, "name", svr.DBName)
		db, err = gorm.Open(postgres.Open(PostgresDSN(svr)), gormLoggerFor(cfg, svr))
	default:
		return nil, fmt.Errorf("database %q not implemented", svr.Database)
	}
	if err != nil {
		return nil, err
	}

	s := NewStore(db, cfg)
	if err = s.AutoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// PostgresDSN builds the key/value connection string for the pgx driver.
func PostgresDSN(svr Server) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		svr.DBHost, svr.DBUser, svr.DBPassword, svr.DBName, svr.DBPort)
}
