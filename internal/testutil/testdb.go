//go:build integration

package testutil

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupTestDB starts a throwaway PostgreSQL container, applies the embedded
// migrations and returns a pool on it. Everything is torn down with the test.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	if err := database.RunMigrations(connStr, slog.Default()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := database.NewPgxPool(ctx, connStr, true)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	return pool
}
