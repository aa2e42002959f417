package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/billingcat/clients/controller"
	"github.com/billingcat/clients/model"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func dothings() error {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	runMigrate := flag.Bool("migrate", false, "apply SQL migrations and exit")
	runMaintenance := flag.Bool("maintenance", false, "run housekeeping tasks and exit")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	if *runMigrate {
		return migrateUp(cfg)
	}

	store, err := model.InitDatabase(cfg)
	if err != nil {
		return err
	}

	if *runMaintenance {
		defer store.Close()
		return model.RunMaintenance(context.Background(), store)
	}
	return controller.NewController(store)
}

// migrateUp applies all pending SQL migrations for the database the binary
// was built for.
func migrateUp(cfg *model.Config) error {
	m, err := migrate.New("file://"+migrationsDir(), migrateDSN(cfg))
	if err != nil {
		return fmt.Errorf("cannot prepare migrations: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cannot apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Printf("migrations applied, version %d (dirty: %t)", version, dirty)
	return nil
}

func main() {
	if err := dothings(); err != nil {
		log.Fatal(err)
	}
}
