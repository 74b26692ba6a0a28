package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/paseto/token"
	"github.com/oarkflow/xid/wuid"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/authforms/pkg/forms"
	"github.com/oarkflow/authforms/pkg/http/requests"
	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/objects"
	"github.com/oarkflow/authforms/pkg/storage"
	"github.com/oarkflow/authforms/pkg/utils"
)

// PostRegister receives the native submission that follows a successful
// registration check. Every rule runs again since the browser can be skipped.
func PostRegister(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return renderErrorPage(c, http.StatusBadRequest, "Datos inválidos",
			"No pudimos procesar el formulario enviado.",
			"Revisa que todos los campos estén completos e inténtalo de nuevo.",
			fmt.Sprintf("BodyParser error: %v", err), utils.RegisterURI)
	}
	s := req.Submission()
	if first, failed := forms.Register().Rules().Validate(s).First(); failed {
		return redirectWithError(c, utils.RegisterURI, first.Message)
	}
	email := utils.NormalizeEmail(s.Get("email"))
	passwordHash, err := utils.HashPassword(s.Get("password"), objects.Config.GetString("auth.password_algo"))
	if err != nil {
		return renderErrorPage(c, http.StatusInternalServerError, "Error al procesar la contraseña",
			"No pudimos proteger tu contraseña.",
			"Inténtalo de nuevo en unos momentos.",
			fmt.Sprintf("hash generation failed: %v", err), utils.RegisterURI)
	}
	user := models.User{
		UserID:       wuid.New().Int64(),
		Nombre:       utils.SanitizeInput(s.Get("nombre")),
		Apellido:     utils.SanitizeInput(s.Get("apellido")),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := objects.Manager.Vault().CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return redirectWithError(c, utils.RegisterURI, msgEmailTaken)
		}
		return renderErrorPage(c, http.StatusInternalServerError, "Error de registro",
			"No pudimos guardar tu cuenta.",
			"Inténtalo de nuevo en unos momentos.",
			fmt.Sprintf("user storage failed: %v", err), utils.RegisterURI)
	}
	log.Printf("registered user %d <%s>", user.UserID, user.Email)
	return flash.WithSuccess(c, fiber.Map{
		"kind":    flashKindSuccess,
		"message": msgRegistered,
	}).Redirect(utils.LoginURI, fiber.StatusSeeOther)
}

// PostLogin is the form-encoded login used when scripts are unavailable.
func PostLogin(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, utils.LoginURI, msgBadRequest)
	}
	user, status, verdict := authenticate(c, req.Submission())
	if !verdict.Success {
		message := msgLoginFailed
		if status == http.StatusTooManyRequests {
			message = msgLoginBlocked
		}
		return redirectWithError(c, utils.LoginURI, message)
	}
	if err := issueSession(c, user); err != nil {
		return renderErrorPage(c, http.StatusInternalServerError, "Error de inicio de sesión",
			"No pudimos crear tu sesión.",
			"Inténtalo de nuevo en unos momentos.",
			fmt.Sprintf("PASETO token encryption failed: %v", err), utils.LoginURI)
	}
	return flash.WithSuccess(c, fiber.Map{
		"kind":    flashKindSuccess,
		"message": msgLoginSuccess,
	}).Redirect(objects.Manager.LoginSuccessURL(), fiber.StatusSeeOther)
}

func PostLogout(c *fiber.Ctx) error {
	if userID, ok := c.Locals("user_id").(int64); ok {
		objects.Manager.LogoutTracker().SetUserLogout(userID)
	}
	c.Cookie(utils.GetCookie(objects.Config.GetBool("app.https"), objects.Config.GetString("app.env"), sessionName(), "", -1))
	c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
	return flash.WithSuccess(c, fiber.Map{
		"kind":    flashKindSuccess,
		"message": msgLoggedOut,
	}).Redirect(utils.LoginURI, fiber.StatusSeeOther)
}

// issueSession sets the encrypted session cookie for user.
func issueSession(c *fiber.Ctx, user models.User) error {
	sessionTimeout := objects.Manager.SessionTimeout()
	claims := utils.GetClaims(user.UserID, user.Email, utils.NewNonce(), utils.GetClientIP(c), sessionTimeout)
	t := token.CreateToken(sessionTimeout, token.AlgEncrypt)
	_ = token.RegisterClaims(t, claims)
	secret := objects.Config.GetString("auth.secret")
	tokenStr, err := token.EncryptToken(t, []byte(secret))
	if err != nil {
		return err
	}
	objects.Manager.LogoutTracker().ClearUserLogout(user.UserID)
	enableHTTPS := objects.Config.GetBool("app.https")
	appEnv := objects.Config.GetString("app.env")
	c.Cookie(utils.GetCookie(enableHTTPS, appEnv, sessionName(), tokenStr, int(sessionTimeout.Seconds())))
	return nil
}

func sessionName() string {
	return objects.Config.GetString("auth.session_name", utils.DefaultSessionName)
}

func redirectWithError(c *fiber.Ctx, uri, message string) error {
	return flash.WithError(c, fiber.Map{
		"kind":    flashKindError,
		"message": message,
	}).Redirect(uri, fiber.StatusSeeOther)
}
