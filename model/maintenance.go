package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// maintenanceLockID identifies the advisory lock of a maintenance run.
const maintenanceLockID = 91423001

// RunMaintenance executes housekeeping tasks.
// Tasks are idempotent and safe to run multiple times.
func RunMaintenance(ctx context.Context, s *Store) error {
	start := time.Now()
	slog.Info("maintenance: start")

	// DB-level singleton lock (Postgres only).
	unlock, err := tryAcquireLock(ctx, s)
	if err != nil {
		return err
	}
	if unlock != nil {
		defer unlock()
	}

	// 1) Contacts whose client is gone (only possible without FK enforcement)
	n, err := deleteOrphanContacts(ctx, s)
	if err != nil {
		return fmt.Errorf("delete orphan contacts: %w", err)
	}
	slog.Info("maintenance: orphan contacts removed", "count", n)

	// 2) VACUUM/ANALYZE depending on the DB engine
	if err := vacuumAnalyze(ctx, s); err != nil {
		return fmt.Errorf("vacuum/analyze: %w", err)
	}

	slog.Info("maintenance: done", "duration", time.Since(start).Truncate(time.Millisecond).String())
	return nil
}

func tryAcquireLock(ctx context.Context, s *Store) (func(), error) {
	if s.Dialect() != "postgres" {
		// no locking in SQLite
		return nil, nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	var got bool
	if err := sqlDB.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", maintenanceLockID).Scan(&got); err != nil {
		return nil, err
	}
	if !got {
		return nil, errors.New("another maintenance run is in progress")
	}
	return func() {
		_, _ = sqlDB.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", maintenanceLockID)
	}, nil
}

// deleteOrphanContacts removes contacts that reference a missing client and
// returns how many were deleted.
func deleteOrphanContacts(ctx context.Context, s *Store) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("client_id NOT IN (?)", s.db.Model(&Client{}).Select("id")).
		Delete(&Contact{})
	return res.RowsAffected, res.Error
}

// vacuumAnalyze runs database cleanup commands depending on DB engine.
func vacuumAnalyze(ctx context.Context, s *Store) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	switch s.Dialect() {
	case "postgres":
		_, err = sqlDB.ExecContext(ctx, "VACUUM (ANALYZE)")
	case "sqlite":
		_, err = sqlDB.ExecContext(ctx, "VACUUM")
		if err == nil {
			_, _ = sqlDB.ExecContext(ctx, "PRAGMA optimize")
		}
	}
	return err
}
