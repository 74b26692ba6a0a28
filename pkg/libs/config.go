package libs

import (
	"time"

	"github.com/oarkflow/authforms/pkg/objects"
)

type Config struct {
	Secret            []byte
	SessionName       string
	SessionTimeout    time.Duration
	LoginSuccessURL   string
	MaxLoginAttempts  int
	RateLimitRequests int
	PasswordAlgo      string
	EnableHTTPS       bool
	Environment       string
}

func LoadConfig() *Config {
	return &Config{
		Secret:            []byte(objects.Config.GetString("auth.secret")),
		SessionName:       objects.Config.GetString("auth.session_name", "session_token"),
		SessionTimeout:    objects.Config.GetDuration("auth.session_timeout", "24h"),
		LoginSuccessURL:   objects.Config.GetString("auth.login_success_url", "/"),
		MaxLoginAttempts:  objects.Config.GetInt("auth.max_login_attempts", 5),
		RateLimitRequests: objects.Config.GetInt("auth.rate_limit_requests", 30),
		PasswordAlgo:      objects.Config.GetString("auth.password_algo"),
		EnableHTTPS:       objects.Config.GetBool("app.https"),
		Environment:       objects.Config.GetString("app.env"),
	}
}
