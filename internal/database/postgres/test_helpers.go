package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var kvTables = []string{"kv_blobs", "kv_counters", "kv_zsets", "kv_hashes"}

// truncateAll empties every KV table so each test starts clean.
func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	for _, table := range kvTables {
		if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
