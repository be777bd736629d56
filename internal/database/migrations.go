package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// MigrationStatus compares the applied schema version with the newest migration on disk
type MigrationStatus struct {
	Current int64 `json:"current"`
	Latest  int64 `json:"latest"`
}

// Pending reports whether migrations on disk have not been applied yet
func (s MigrationStatus) Pending() bool {
	return s.Current < s.Latest
}

func (s MigrationStatus) String() string {
	return fmt.Sprintf("%d/%d", s.Current, s.Latest)
}

// RunMigrations applies every pending migration in dir
func RunMigrations(ctx context.Context, db *sql.DB, dir string, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Applying storefront migrations", zap.String("dir", dir))

	if err := goose.UpContext(ctx, db, dir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	status, err := Status(ctx, db, dir)
	if err != nil {
		return err
	}
	logger.Info("Schema is up to date", zap.Int64("version", status.Current))
	return nil
}

// LatestVersion is the highest migration version found in dir
func LatestVersion(dir string) (int64, error) {
	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := migrations.Last()
	if err != nil {
		return 0, fmt.Errorf("failed to find latest migration: %w", err)
	}
	return last.Version, nil
}

// Status reads the applied schema version and the newest version in dir
func Status(ctx context.Context, db *sql.DB, dir string) (*MigrationStatus, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	latest, err := LatestVersion(dir)
	if err != nil {
		return nil, err
	}
	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	return &MigrationStatus{Current: current, Latest: latest}, nil
}
