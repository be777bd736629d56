package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shoe-storefront/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Service owns the PostgreSQL connection pool
type Service interface {
	DB() *sql.DB
	// Health reports pool statistics, the schema version and whether the database answers a ping
	Health(ctx context.Context) map[string]string
	Close() error
}

type service struct {
	db            *sql.DB
	migrationsDir string
	logger        *zap.Logger
}

// New opens a pgx-backed pool for cfg and verifies it with a ping
func New(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (Service, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)
	return &service{db: db, migrationsDir: cfg.MigrationsDir, logger: logger}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("Database health check failed", zap.Error(err))
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	stats["wait_count"] = fmt.Sprint(dbStats.WaitCount)

	if s.migrationsDir != "" {
		status, err := Status(ctx, s.db, s.migrationsDir)
		if err != nil {
			s.logger.Warn("Migration status unavailable", zap.Error(err))
			stats["migrations"] = "unknown"
		} else {
			stats["migrations"] = status.String()
			stats["migrations_pending"] = fmt.Sprint(status.Pending())
		}
	}
	return stats
}

func (s *service) Close() error {
	s.logger.Info("Closing database connection")
	return s.db.Close()
}
