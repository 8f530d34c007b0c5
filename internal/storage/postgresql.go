// Package storage реализует доступ к таблицам backend-а (users, plans)
// напрямую через PostgreSQL. Схема таблиц принадлежит backend-у
// и повторяется здесь без изменений.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUserNotFound — пользователь с указанным идентификатором не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlanNotFound — тариф с указанным идентификатором не найден.
	ErrPlanNotFound = errors.New("plan not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет наличие таблиц, без которых сервис не работает.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	for _, table := range []string{"users", "plans"} {
		var exists bool
		err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("storage.CheckDatabaseReady: %w", err)
		}
		if !exists {
			return fmt.Errorf("storage.CheckDatabaseReady: required table %s missing", table)
		}
	}
	return nil
}
