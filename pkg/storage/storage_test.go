package storage

import (
	"path/filepath"
	"testing"

	"github.com/oarkflow/squealx/drivers/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/authforms/pkg/contracts"
	"github.com/oarkflow/authforms/pkg/models"
)

func newSQLiteStorage(t *testing.T) *DatabaseStorage {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "usuarios.db"), "sqlite")
	require.NoError(t, err)
	store, err := NewDatabaseStorage(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func exerciseStorage(t *testing.T, store contracts.Storage) {
	user := models.User{
		UserID:       42,
		Nombre:       "Ana",
		Apellido:     "Pérez",
		Email:        " Ana@Example.com ",
		PasswordHash: "hash",
	}
	require.NoError(t, store.CreateUser(user))

	exists, err := store.EmailExists("ANA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.GetUserByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Pérez", got.Apellido)
	assert.False(t, got.CreatedAt.IsZero())

	byID, err := store.GetUserByID(42)
	require.NoError(t, err)
	assert.Equal(t, got.Email, byID.Email)

	user.UserID = 43
	assert.ErrorIs(t, store.CreateUser(user), ErrEmailTaken)

	_, err = store.GetUserByEmail("nadie@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = store.GetUserByID(99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	exists, err = store.EmailExists("nadie@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestDatabaseStorageSQLite(t *testing.T) {
	exerciseStorage(t, newSQLiteStorage(t))
}

func TestNewDatabaseStorageRejectsNil(t *testing.T) {
	_, err := NewDatabaseStorage(nil)
	assert.Error(t, err)
}
