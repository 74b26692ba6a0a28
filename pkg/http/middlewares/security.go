package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/authforms/pkg/objects"
)

// The client runs as WebAssembly started by an inline loader, hence
// 'wasm-unsafe-eval' and 'unsafe-inline' for scripts.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline' 'wasm-unsafe-eval'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'"

func SecurityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
	c.Set("Content-Security-Policy", contentSecurityPolicy)
	if objects.Config.GetBool("app.https") {
		c.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
	}
	return c.Next()
}
