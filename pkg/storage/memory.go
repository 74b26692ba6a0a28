package storage

import (
	"strings"
	"sync"
	"time"

	"github.com/oarkflow/authforms/pkg/models"
)

// MemoryStorage keeps users in process memory. It backs tests and the
// server's "memory" driver.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[int64]models.User
	byEmail map[string]int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
	}
}

func (m *MemoryStorage) CreateUser(user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := m.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.byID[user.UserID] = user
	m.byEmail[user.Email] = user.UserID
	return nil
}

func (m *MemoryStorage) GetUserByEmail(email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStorage) GetUserByID(userID int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byID[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *MemoryStorage) EmailExists(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}
