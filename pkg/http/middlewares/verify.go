package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/paseto/token"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/objects"
	"github.com/oarkflow/authforms/pkg/utils"
)

const (
	msgAuthRequired   = "Inicia sesión para continuar."
	msgInvalidSession = "Tu sesión no es válida. Inicia sesión de nuevo."
	msgSessionEnded   = "Tu sesión ha finalizado."
)

// SendError rejects the request: scripts get a verdict, browsers are sent
// back to the login page with a flash message.
func SendError(c *fiber.Ctx, status int, message string) error {
	if utils.WantsJSON(c) {
		return c.Status(status).JSON(models.Reject(models.FormErrorKey, message))
	}
	return flash.WithError(c, fiber.Map{
		"kind":    "error",
		"message": message,
	}).Redirect(utils.LoginURI, fiber.StatusSeeOther)
}

// Verify admits requests carrying a valid session token, read from the
// session cookie or a bearer Authorization header.
func Verify(c *fiber.Ctx) error {
	sessionName := objects.Config.GetString("auth.session_name", utils.DefaultSessionName)
	tokenStr := c.Cookies(sessionName)
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	}
	if tokenStr == "" {
		return SendError(c, fiber.StatusUnauthorized, msgAuthRequired)
	}
	secret := objects.Config.GetString("auth.secret")
	decTok, err := token.DecryptToken(tokenStr, []byte(secret))
	if err != nil {
		return SendError(c, fiber.StatusUnauthorized, msgInvalidSession)
	}
	claims := decTok.Claims
	if exp := utils.ClaimInt(claims, "exp"); exp > 0 && exp < time.Now().Unix() {
		return SendError(c, fiber.StatusUnauthorized, msgSessionEnded)
	}
	if claimIP, _ := claims["ip"].(string); claimIP != "" && claimIP != utils.GetClientIP(c) {
		return SendError(c, fiber.StatusUnauthorized, msgInvalidSession)
	}
	userID := utils.ClaimInt(claims, "sub")
	user, err := objects.Manager.Vault().GetUserByID(userID)
	if err != nil {
		return SendError(c, fiber.StatusUnauthorized, msgInvalidSession)
	}
	if iat := utils.ClaimInt(claims, "iat"); iat > 0 && objects.Manager.LogoutTracker().IsUserLoggedOut(userID, iat) {
		return SendError(c, fiber.StatusUnauthorized, msgSessionEnded)
	}
	c.Locals("user", user)
	c.Locals("user_id", userID)
	c.Locals("claims", claims)
	c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
	return c.Next()
}
