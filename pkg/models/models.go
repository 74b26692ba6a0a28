package models

import "time"

// FormErrorKey carries a message that belongs to the form rather than to
// one of its inputs.
const FormErrorKey = "form"

// RateLimiter holds recent request times per identifier.
type RateLimiter struct {
	Requests map[string][]time.Time
}

// User is a registered account. Email is stored lower-cased.
type User struct {
	UserID       int64     `db:"user_id"`
	Nombre       string    `db:"nombre"`
	Apellido     string    `db:"apellido"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Verdict is the answer of a verification endpoint.
type Verdict struct {
	Success     bool              `json:"success"`
	Errors      map[string]string `json:"errors,omitempty"`
	RedirectURL string            `json:"redirect_url,omitempty"`
}

// Reject builds a failed verdict with a single field message.
func Reject(field, message string) Verdict {
	return Verdict{Errors: map[string]string{field: message}}
}

type ErrorPageData struct {
	Title       string
	StatusCode  int
	Message     string
	Description string
	Technical   string
	RetryURL    string
	ErrorID     string
}

// Flash is the one-shot message shown at the top of a page.
type Flash struct {
	Kind    string
	Message string
}
