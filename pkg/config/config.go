package config

import (
	"github.com/oarkflow/authforms/pkg/objects"
)

type Config struct{}

func (a *Config) Prefix() string {
	return "auth"
}

// Load registers the application defaults, each overridable from the
// environment. objects.Config must be set first.
func (a *Config) Load() {
	objects.Config.Add("app", map[string]any{
		"name":       objects.Config.Env("APP_NAME", "Auth Forms"),
		"env":        objects.Config.Env("APP_ENV", "development"),
		"https":      objects.Config.Env("APP_HTTPS", false),
		"addr":       objects.Config.Env("APP_ADDR", ":3000"),
		"static_dir": objects.Config.Env("APP_STATIC_DIR", "./static"),
	})
	objects.Config.Add(a.Prefix(), map[string]any{
		"secret":            objects.Config.Env("AUTH_SECRET", "OdR4DlWhZk6osDd0qXLdVT88lHOvj14L"),
		"session_name":      objects.Config.Env("AUTH_SESSION_NAME", "session_token"),
		"session_timeout":   objects.Config.Env("AUTH_SESSION_TIMEOUT", "24h"),
		"password_algo":     objects.Config.Env("AUTH_PASSWORD_ALGO", ""),
		"login_success_url": objects.Config.Env("AUTH_LOGIN_SUCCESS_URL", "/"),

		"max_login_attempts":  objects.Config.Env("AUTH_MAX_LOGIN_ATTEMPTS", 5),
		"rate_limit_requests": objects.Config.Env("AUTH_RATE_LIMIT_REQUESTS", 30),
	})
	objects.Config.Add("db", map[string]any{
		"driver":   objects.Config.Env("DB_DRIVER", "sqlite"),
		"path":     objects.Config.Env("DB_PATH", "usuarios.db"),
		"host":     objects.Config.Env("DB_HOST", "localhost"),
		"port":     objects.Config.Env("DB_PORT", 5432),
		"username": objects.Config.Env("DB_USERNAME", "postgres"),
		"password": objects.Config.Env("DB_PASSWORD", "postgres"),
		"database": objects.Config.Env("DB_DATABASE", "authforms"),
	})
}
