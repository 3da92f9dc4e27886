package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrator применяет миграции схемы БД через goose
type Migrator struct {
	db   *sql.DB
	path string
}

// New создает мигратор для указанной директории с миграциями
func New(db *sql.DB, path string) *Migrator {
	return &Migrator{db: db, path: path}
}

// Up применяет все непримененные миграции
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrator: set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, m.db, m.path); err != nil {
		return fmt.Errorf("migrator: apply migrations: %w", err)
	}

	return nil
}

// Status выводит состояние миграций в лог goose
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrator: set dialect: %w", err)
	}

	if err := goose.StatusContext(ctx, m.db, m.path); err != nil {
		return fmt.Errorf("migrator: migrations status: %w", err)
	}

	return nil
}
