package credstore

import (
	"errors"
	"fmt"
)

// ключи сессии в key-value хранилище
const (
	keyToken = "token"
	keyEmail = "email"
	keyName  = "name"
)

// ErrNoSession — пользователь не вошёл в систему
var ErrNoSession = errors.New("no active session")

// KV — контракт key-value хранилища, в котором живут учётные данные
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store — фасад над key-value хранилищем для данных сессии
// остальной код видит только его: ни движок синхронизации, ни клиент бэкенда
// напрямую к хранилищу не обращаются
type Store struct {
	kv KV
}

// New создаёт хранилище учётных данных поверх kv
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Token возвращает bearer-токен текущей сессии
// реализует контракт TokenProvider клиента бэкенда
func (s *Store) Token() (string, error) {
	token, ok, err := s.kv.Get(keyToken)
	if err != nil {
		return "", fmt.Errorf("credstore: failed to read token: %w", err)
	}
	if !ok || token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// SaveSession сохраняет данные сессии после входа или регистрации
func (s *Store) SaveSession(token, email, name string) error {
	if err := s.kv.Set(keyToken, token); err != nil {
		return fmt.Errorf("credstore: failed to save token: %w", err)
	}
	if err := s.kv.Set(keyEmail, email); err != nil {
		return fmt.Errorf("credstore: failed to save email: %w", err)
	}
	if err := s.kv.Set(keyName, name); err != nil {
		return fmt.Errorf("credstore: failed to save name: %w", err)
	}
	return nil
}

// Session возвращает email и имя текущего пользователя
func (s *Store) Session() (email, name string, err error) {
	email, ok, err := s.kv.Get(keyEmail)
	if err != nil {
		return "", "", fmt.Errorf("credstore: failed to read email: %w", err)
	}
	if !ok {
		return "", "", ErrNoSession
	}
	name, _, err = s.kv.Get(keyName)
	if err != nil {
		return "", "", fmt.Errorf("credstore: failed to read name: %w", err)
	}
	return email, name, nil
}

// SetName обновляет сохранённое имя пользователя
func (s *Store) SetName(name string) error {
	if err := s.kv.Set(keyName, name); err != nil {
		return fmt.Errorf("credstore: failed to save name: %w", err)
	}
	return nil
}

// Clear удаляет данные сессии; выход без сессии — no-op
func (s *Store) Clear() error {
	for _, key := range []string{keyToken, keyEmail, keyName} {
		if err := s.kv.Remove(key); err != nil {
			return fmt.Errorf("credstore: failed to remove %s: %w", key, err)
		}
	}
	return nil
}
