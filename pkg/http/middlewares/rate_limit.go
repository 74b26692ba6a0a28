package middlewares

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/authforms/pkg/http/responses"
	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/objects"
	"github.com/oarkflow/authforms/pkg/utils"
)

const msgTooManyRequests = "Demasiadas solicitudes. Espera un momento antes de intentarlo de nuevo."

// RateLimit applies the configured per-minute budget.
func RateLimit(c *fiber.Ctx) error {
	return RateLimitWithMax(objects.Manager.RateLimitRequests())(c)
}

// RateLimitWithMax limits each client IP to maxRequests per minute on each
// path. Scripts get a verdict with a form-level error.
func RateLimitWithMax(maxRequests int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		endpointID := fmt.Sprintf("%s:%s", utils.GetClientIP(c), c.Path())
		if objects.Manager.Security().IsRateLimitedWithMax(endpointID, maxRequests) {
			log.Printf("rate limit exceeded for %s", endpointID)
			if utils.WantsJSON(c) {
				return responses.Verdict(c, fiber.StatusTooManyRequests, models.Reject(models.FormErrorKey, msgTooManyRequests))
			}
			return SendError(c, fiber.StatusTooManyRequests, msgTooManyRequests)
		}
		objects.Manager.Security().RecordRequest(endpointID)
		return c.Next()
	}
}
