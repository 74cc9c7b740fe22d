package repository

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseUpContext is swapped in tests.
var gooseUpContext = goose.UpContext

// Migrate applies every pending schema migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return errors.Wrap(err, "set migration dialect")
	}

	if err := gooseUpContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	return nil
}
