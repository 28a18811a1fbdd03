package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/app.db")
	if !strings.HasPrefix(dsn, "file:/tmp/app.db?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	if strings.Count(dsn, "_pragma=") != len(pragmas) {
		t.Fatalf("expected %d pragmas in %s", len(pragmas), dsn)
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	ctx := context.Background()
	database, err := Open(ctx, filepath.Join(t.TempDir(), "pragma.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			if err := database.QueryRowContext(ctx, "PRAGMA "+tt.pragma).Scan(&got); err != nil {
				t.Fatalf("query pragma: %v", err)
			}
			if got != tt.want {
				t.Fatalf("%s = %q, want %q", tt.pragma, got, tt.want)
			}
		})
	}
}
