package libs

import (
	"sync"
	"time"
)

// UserLogoutTracker remembers when each user last logged out so session
// tokens issued before that moment are refused.
type UserLogoutTracker struct {
	logoutTimes map[int64]int64
	mu          sync.RWMutex
}

func NewUserLogoutTracker() *UserLogoutTracker {
	return &UserLogoutTracker{
		logoutTimes: make(map[int64]int64),
	}
}

func (t *UserLogoutTracker) SetUserLogout(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logoutTimes[userID] = time.Now().Unix()
}

// IsUserLoggedOut reports whether a token issued at authTimestamp predates
// the user's last logout. Tokens issued in the same second as the logout are
// treated as logged out too.
func (t *UserLogoutTracker) IsUserLoggedOut(userID int64, authTimestamp int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	logoutTime, exists := t.logoutTimes[userID]
	if !exists {
		return false
	}
	return authTimestamp <= logoutTime
}

func (t *UserLogoutTracker) ClearUserLogout(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.logoutTimes, userID)
}
