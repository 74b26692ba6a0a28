package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/authforms/pkg/forms"
	"github.com/oarkflow/authforms/pkg/http/requests"
	"github.com/oarkflow/authforms/pkg/http/responses"
	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/objects"
	"github.com/oarkflow/authforms/pkg/storage"
	"github.com/oarkflow/authforms/pkg/utils"
	"github.com/oarkflow/authforms/pkg/validation"
)

// CheckCredentials answers the login form's verification request. A
// successful check also opens the session, so the browser only has to
// follow redirect_url.
func CheckCredentials(c *fiber.Ctx) error {
	var req requests.CheckCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Verdict(c, http.StatusBadRequest, models.Reject(models.FormErrorKey, msgBadRequest))
	}
	user, status, verdict := authenticate(c, req.Submission())
	if !verdict.Success {
		return responses.Verdict(c, status, verdict)
	}
	if err := issueSession(c, user); err != nil {
		log.Printf("issue session for user %d: %v", user.UserID, err)
		return responses.Verdict(c, http.StatusInternalServerError, models.Reject(models.FormErrorKey, msgServerError))
	}
	return responses.Verdict(c, http.StatusOK, models.Verdict{
		Success:     true,
		RedirectURL: objects.Manager.LoginSuccessURL(),
	})
}

// CheckRegister tells the registration form whether its email can still be
// used.
func CheckRegister(c *fiber.Ctx) error {
	var req requests.CheckRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Verdict(c, http.StatusBadRequest, models.Reject(models.FormErrorKey, msgBadRequest))
	}
	s := req.Submission()
	if errs := forms.Register().SentRules().Validate(s); !errs.Empty() {
		return responses.Verdict(c, http.StatusBadRequest, models.Verdict{Errors: errs.Map()})
	}
	exists, err := objects.Manager.Vault().EmailExists(utils.NormalizeEmail(s.Get("email")))
	if err != nil {
		log.Printf("check register: %v", err)
		return responses.Verdict(c, http.StatusInternalServerError, models.Reject(models.FormErrorKey, msgServerError))
	}
	if exists {
		return responses.Verdict(c, http.StatusConflict, models.Reject("email", msgEmailTaken))
	}
	return responses.Verdict(c, http.StatusOK, models.Verdict{Success: true})
}

// authenticate runs the login rules and the credential lookup shared by the
// verification endpoint and the native login post. Failed attempts count
// per client IP and email.
func authenticate(c *fiber.Ctx, s validation.Submission) (models.User, int, models.Verdict) {
	if errs := forms.Login().Rules().Validate(s); !errs.Empty() {
		return models.User{}, http.StatusBadRequest, models.Verdict{Errors: errs.Map()}
	}
	email := utils.NormalizeEmail(s.Get("email"))
	loginIdentifier := fmt.Sprintf("%s:%s", utils.GetClientIP(c), email)
	security := objects.Manager.Security()
	if security.IsLoginBlocked(loginIdentifier) {
		return models.User{}, http.StatusTooManyRequests, models.Reject("password", msgLoginBlocked)
	}
	user, err := objects.Manager.Vault().GetUserByEmail(email)
	if errors.Is(err, storage.ErrUserNotFound) {
		security.RecordFailedLogin(loginIdentifier)
		return models.User{}, http.StatusUnauthorized, models.Reject("email", msgUnknownEmail)
	}
	if err != nil {
		log.Printf("lookup %s: %v", email, err)
		return models.User{}, http.StatusInternalServerError, models.Reject(models.FormErrorKey, msgServerError)
	}
	algo := objects.Config.GetString("auth.password_algo")
	ok, err := utils.HashCheck(s.Get("password"), user.PasswordHash, algo, "")
	if err != nil || !ok {
		security.RecordFailedLogin(loginIdentifier)
		return models.User{}, http.StatusUnauthorized, models.Reject("password", msgBadPassword)
	}
	security.ClearLoginAttempts(loginIdentifier)
	return user, http.StatusOK, models.Verdict{Success: true}
}
