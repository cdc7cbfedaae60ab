package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable records the applied migration version.
const VersionTable = "schema_version"

// Migrations returns the embedded migration files rooted at the migrations directory.
func Migrations() (fs.FS, error) {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	return subtree, nil
}

// Migrate brings the schema at dsn up to the latest embedded migration.
// It uses a dedicated connection rather than the pool.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := Migrations()
	if err != nil {
		return err
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	to := int32(len(m.Migrations))
	if from == to {
		logger.Info().Int32("version", to).Msg("database schema up to date")
	} else {
		logger.Info().Int32("from", from).Int32("to", to).Msg("migrated database schema")
	}
	return nil
}
