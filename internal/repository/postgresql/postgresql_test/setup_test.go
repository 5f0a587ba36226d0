package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and skips the test when it is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// beginFixtureTx applies the schema inside a transaction that is rolled back when
// the test ends, and returns a context that routes repository queries through it.
func beginFixtureTx(t *testing.T, db *database.DB) (context.Context, pgx.Tx) {
	t.Helper()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	schema, err := os.ReadFile(schemaPath(t))
	require.NoError(t, err)
	_, err = tx.Exec(ctx, string(schema))
	require.NoError(t, err)

	for _, table := range []string{"allowances", "attendance", "holidays", "employees", "shifts"} {
		_, err = tx.Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}

	return postgresql.ContextWithTx(ctx, tx), tx
}

func schemaPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "000001_init_schema.up.sql")
}
