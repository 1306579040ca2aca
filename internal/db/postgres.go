package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const connectAttempts = 10

// InitPostgres opens a sqlx pool against dsn, retrying while the database comes up
func InitPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < connectAttempts; i++ {
		conn, err = sqlx.ConnectContext(ctx, "postgres", dsn)
		if err == nil {
			conn.SetMaxOpenConns(5)
			conn.SetConnMaxIdleTime(5 * time.Minute)
			return conn, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", connectAttempts, err)
}

// Ping checks the pool with a trivial query
func Ping(ctx context.Context, conn *sqlx.DB) error {
	var one int
	if err := conn.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}
