package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"bank-assistant/internal/utils"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationURL переводит postgres:// DSN в схему драйвера pgx5://.
func MigrationURL(dbURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dbURL, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dbURL
}

func newMigrator(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения миграций: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	return m, nil
}

// MigrateUp применяет все миграции. Отсутствие изменений не ошибка.
func MigrateUp(dbURL string) error {
	return runMigration(dbURL, "up", (*migrate.Migrate).Up)
}

// MigrateDown откатывает все миграции.
func MigrateDown(dbURL string) error {
	return runMigration(dbURL, "down", (*migrate.Migrate).Down)
}

func runMigration(dbURL, direction string, step func(*migrate.Migrate) error) error {
	m, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			utils.LogWarning("Migrate", "Ошибка закрытия мигратора: %v, %v", srcErr, dbErr)
		}
	}()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			utils.LogInfo("Migrate", "Миграции (%s): изменений нет", direction)
			return nil
		}
		return fmt.Errorf("ошибка миграции %s: %w", direction, err)
	}

	version, dirty, _ := m.Version()
	utils.LogSuccess("Migrate", "Миграции (%s) применены, версия %d, dirty=%v", direction, version, dirty)
	return nil
}
