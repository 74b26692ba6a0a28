package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/oarkflow/hash"
)

var strictPolicy = bluemonday.StrictPolicy()

// HashCheck matches password against hashStr, retrying with legacyAlgo when
// the current algorithm rejects it.
func HashCheck(password, hashStr, algo, legacyAlgo string) (bool, error) {
	ok, err := hash.Match(password, hashStr, algo)
	if ok || legacyAlgo == "" {
		return ok, err
	}
	return hash.Match(password, hashStr, legacyAlgo)
}

// SanitizeInput strips every tag from a free-text value.
func SanitizeInput(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewNonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func GetCookie(enableHTTPS bool, env, key, val string, maxAges ...int) *fiber.Cookie {
	maxAge := 300
	if len(maxAges) > 0 {
		maxAge = maxAges[0]
	}
	secure := enableHTTPS || env == "production"
	return &fiber.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// GetClaims builds the session token claims for userID.
func GetClaims(userID int64, email, nonce, ip string, timeout time.Duration) map[string]any {
	now := time.Now()
	return map[string]any{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(timeout).Unix(),
		"nonce": nonce,
		"ip":    ip,
	}
}

// ClaimInt reads a numeric claim whatever type the token decoder gave it.
func ClaimInt(claims map[string]any, key string) int64 {
	switch v := claims[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case interface{ Int64() (int64, error) }:
		n, _ := v.Int64()
		return n
	}
	return 0
}

func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); len(xff) > 0 {
		if comma := strings.IndexByte(xff, ','); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}
	if xri := c.Get("X-Real-IP"); len(xri) > 0 {
		return strings.TrimSpace(xri)
	}
	ip := c.IP()
	if i := strings.LastIndexByte(ip, ':'); i != -1 && strings.Count(ip, ":") == 1 {
		return ip[:i]
	}
	return ip
}

// WantsJSON reports whether the caller is a script expecting a JSON answer.
func WantsJSON(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	if strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return true
	}
	if c.Get(fiber.HeaderAccept) == "" {
		return false
	}
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMEApplicationJSON
}
