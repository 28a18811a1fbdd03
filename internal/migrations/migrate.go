package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	sqlfiles "github.com/Simplici0/cleanquote/migrations"
)

// Up runs all pending embedded SQL migrations.
func Up(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	return UpFS(ctx, db, sqlfiles.FS, log)
}

// UpFS runs all pending migrations found at the root of fsys.
func UpFS(ctx context.Context, db *sql.DB, fsys fs.FS, log *zap.Logger) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	for _, r := range results {
		log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration))
	}
	return nil
}
