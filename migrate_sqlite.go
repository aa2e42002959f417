//go:build sqlite

package main

import (
	"fmt"
	"path/filepath"

	"github.com/billingcat/clients/model"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // CGO!
)

func migrationsDir() string { return "migrations/sqlite3" }

// migrateDSN points at the same file InitDatabase opens.
func migrateDSN(cfg *model.Config) string {
	dbPath := cfg.Server().DBName
	if !filepath.IsAbs(dbPath) {
		dbPath = "./" + filepath.Join("db", dbPath)
	}
	return fmt.Sprintf("sqlite3://%s?_foreign_keys=on&_journal_mode=WAL",
		filepath.ToSlash(dbPath))
}
