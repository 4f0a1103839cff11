package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/GoSim-25-26J-441/projects-console/config"
)

// NewConnection opens a database/sql pool with the configured driver
// ("postgres" for lib/pq, "pgx" for pgx) and verifies it with a ping.
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := DSN(cfg)

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// one interactive user; keep the pool small
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(1)

	return db, nil
}
