package requests

import (
	"github.com/oarkflow/authforms/pkg/validation"
)

type CheckCredentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r CheckCredentialsRequest) Submission() validation.Submission {
	return collect(map[string]string{
		"email":    r.Email,
		"password": r.Password,
	})
}

type CheckRegisterRequest struct {
	Email string `json:"email" form:"email"`
}

func (r CheckRegisterRequest) Submission() validation.Submission {
	return collect(map[string]string{"email": r.Email})
}

// LoginRequest is the form-encoded fallback of the login page.
type LoginRequest = CheckCredentialsRequest

type RegisterRequest struct {
	Nombre          string `json:"nombre" form:"nombre"`
	Apellido        string `json:"apellido" form:"apellido"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (r RegisterRequest) Submission() validation.Submission {
	return collect(map[string]string{
		"nombre":           r.Nombre,
		"apellido":         r.Apellido,
		"email":            r.Email,
		"password":         r.Password,
		"confirm_password": r.ConfirmPassword,
	})
}

// collect trims values the same way the browser controller does.
func collect(values map[string]string) validation.Submission {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	return validation.Collect(names, func(name string) string { return values[name] })
}
