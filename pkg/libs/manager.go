package libs

import (
	"sync"
	"time"

	"github.com/oarkflow/authforms/pkg/contracts"
	"github.com/oarkflow/authforms/pkg/models"
)

const (
	loginCooldownPeriod = 15 * time.Minute
	rateLimitWindow     = time.Minute
)

type SecurityManager struct {
	RateLimiter      *models.RateLimiter
	LoginAttempts    map[string][]time.Time
	MaxLoginAttempts int
	mu               sync.RWMutex
}

func NewSecurityManager(maxLoginAttempts int) *SecurityManager {
	if maxLoginAttempts <= 0 {
		maxLoginAttempts = 5
	}
	return &SecurityManager{
		RateLimiter: &models.RateLimiter{
			Requests: make(map[string][]time.Time),
		},
		LoginAttempts:    make(map[string][]time.Time),
		MaxLoginAttempts: maxLoginAttempts,
	}
}

// IsRateLimitedWithMax reports whether identifier made maxRequests or more
// requests within the last minute.
func (s *SecurityManager) IsRateLimitedWithMax(identifier string, maxRequests int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countSince(s.RateLimiter.Requests[identifier], time.Now().Add(-rateLimitWindow)) >= maxRequests
}

func (s *SecurityManager) RecordRequest(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.RateLimiter.Requests[identifier] = prune(append(s.RateLimiter.Requests[identifier], now), now.Add(-rateLimitWindow))
}

func (s *SecurityManager) IsLoginBlocked(identifier string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countSince(s.LoginAttempts[identifier], time.Now().Add(-loginCooldownPeriod)) >= s.MaxLoginAttempts
}

func (s *SecurityManager) RecordFailedLogin(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.LoginAttempts[identifier] = prune(append(s.LoginAttempts[identifier], now), now.Add(-loginCooldownPeriod))
}

func (s *SecurityManager) ClearLoginAttempts(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.LoginAttempts, identifier)
}

func countSince(times []time.Time, since time.Time) int {
	count := 0
	for _, t := range times {
		if t.After(since) {
			count++
		}
	}
	return count
}

func prune(times []time.Time, since time.Time) []time.Time {
	filtered := times[:0]
	for _, t := range times {
		if t.After(since) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

type Manager struct {
	vault         contracts.Storage
	security      *SecurityManager
	logoutTracker *UserLogoutTracker
	Config        *Config
}

func NewManager(vault contracts.Storage, cfg *Config) *Manager {
	return &Manager{
		vault:         vault,
		security:      NewSecurityManager(cfg.MaxLoginAttempts),
		logoutTracker: NewUserLogoutTracker(),
		Config:        cfg,
	}
}

func (m *Manager) Vault() contracts.Storage {
	return m.vault
}

func (m *Manager) Security() contracts.SecurityManager {
	return m.security
}

func (m *Manager) LogoutTracker() contracts.LogoutTracker {
	return m.logoutTracker
}

func (m *Manager) LoginSuccessURL() string {
	if m.Config.LoginSuccessURL == "" {
		return "/"
	}
	return m.Config.LoginSuccessURL
}

func (m *Manager) SessionTimeout() time.Duration {
	return m.Config.SessionTimeout
}

func (m *Manager) RateLimitRequests() int {
	return m.Config.RateLimitRequests
}
