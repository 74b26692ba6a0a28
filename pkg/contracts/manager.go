package contracts

import "time"

type SecurityManager interface {
	IsRateLimitedWithMax(identifier string, maxRequests int) bool
	RecordRequest(identifier string)
	IsLoginBlocked(identifier string) bool
	RecordFailedLogin(identifier string)
	ClearLoginAttempts(identifier string)
}

type Manager interface {
	Vault() Storage
	Security() SecurityManager
	LogoutTracker() LogoutTracker
	LoginSuccessURL() string
	SessionTimeout() time.Duration
	RateLimitRequests() int
}

type LogoutTracker interface {
	SetUserLogout(userID int64)
	IsUserLoggedOut(userID int64, authTimestamp int64) bool
	ClearUserLogout(userID int64)
}
