package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV — key-value хранилище в памяти для тестов
type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) {
	value, ok := m[key]
	return value, ok, nil
}

func (m memKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memKV) Remove(key string) error {
	delete(m, key)
	return nil
}

func TestTokenWithoutSession(t *testing.T) {
	store := New(memKV{})

	_, err := store.Token()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSaveSessionRoundTrip(t *testing.T) {
	store := New(memKV{})

	require.NoError(t, store.SaveSession("tok", "user@example.com", "User"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	email, name, err := store.Session()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
	assert.Equal(t, "User", name)
}

func TestSetName(t *testing.T) {
	store := New(memKV{})
	require.NoError(t, store.SaveSession("tok", "user@example.com", "Old"))

	require.NoError(t, store.SetName("New"))

	_, name, err := store.Session()
	require.NoError(t, err)
	assert.Equal(t, "New", name)
}

func TestClear(t *testing.T) {
	store := New(memKV{})
	require.NoError(t, store.SaveSession("tok", "user@example.com", "User"))

	require.NoError(t, store.Clear())

	_, err := store.Token()
	require.ErrorIs(t, err, ErrNoSession)
	_, _, err = store.Session()
	require.ErrorIs(t, err, ErrNoSession)

	// повторный выход без сессии — no-op
	require.NoError(t, store.Clear())
}
