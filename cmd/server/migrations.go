package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/taskboard/taskboard-api/migrations"
)

// runMigrations applies any pending database migrations from the embedded
// migration files. Applying an already-migrated database is a no-op.
func (app *application) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, app.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, app.db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	app.logger.Info("database migrations applied", "version", version)
	return nil
}
