package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store — локальное key-value хранилище на SQLite
// играет роль встроенного хранилища устройства: учётные данные и снимок корзины
// переживают перезапуск, но остаются данными одного пользователя на одной машине
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) файл хранилища и готовит схему
func Open(path string) (*Store, error) {
	const op = "storage.Open"

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}

	return &Store{db: db}, nil
}

// Close закрывает файл хранилища
func (s *Store) Close() error {
	return s.db.Close()
}

// Get возвращает значение по ключу
// отсутствующий ключ — это не ошибка: возвращается пустая строка и false
func (s *Store) Get(key string) (string, bool, error) {
	const op = "storage.Store.Get"

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

// Set записывает значение по ключу, затирая предыдущее
func (s *Store) Set(key, value string) error {
	const op = "storage.Store.Set"

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove удаляет ключ; удаление отсутствующего ключа — no-op
func (s *Store) Remove(key string) error {
	const op = "storage.Store.Remove"

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
