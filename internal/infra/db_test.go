package infra

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMigrateIdempotent applies the embedded migrations twice against TRIPCRAFT_TEST_DSN.
func TestMigrateIdempotent(t *testing.T) {
	dsn := os.Getenv("TRIPCRAFT_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPCRAFT_TEST_DSN not set; skipping DB-backed tests")
	}
	ctx := context.Background()

	_, err := Migrate(ctx, dsn)
	require.NoError(t, err)
	again, err := Migrate(ctx, dsn)
	require.NoError(t, err)
	require.Empty(t, again)

	pool, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, table := range []string{"documents", "ai_usage"} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, table)
	}
}
