package db

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrate aplica as migrations embutidas em fsys (diretório "migrations").
// Cada serviço usa sua própria tabela de controle para poder compartilhar o banco.
func Migrate(dsn string, fsys fs.FS, table string, log *zap.Logger) error {
	src, err := iofs.New(fsys, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	target, err := withMigrationsTable(dsn, table)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, target)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied",
		zap.String("table", table),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// withMigrationsTable adiciona x-migrations-table ao DSN no formato URL
func withMigrationsTable(dsn, table string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	if table == "" {
		return u.String(), nil
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
