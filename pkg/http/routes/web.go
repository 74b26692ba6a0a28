package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/authforms/pkg/http/handlers"
	"github.com/oarkflow/authforms/pkg/http/middlewares"
	"github.com/oarkflow/authforms/pkg/utils"
)

func Setup(prefix string, router fiber.Router) {
	route := router.Group(prefix)
	route.Get(utils.HealthURI, handlers.HealthCheck)
	route.Get(utils.LandingURI, handlers.LandingPage)
	route.Get(utils.LoginURI, handlers.LoginPage)
	route.Post(utils.LoginURI, middlewares.RateLimit, handlers.PostLogin)
	route.Get(utils.RegisterURI, handlers.RegisterPage)
	route.Post(utils.RegisterURI, middlewares.RateLimit, handlers.PostRegister)
	route.Post(utils.CheckCredentialsURI, middlewares.RateLimit, handlers.CheckCredentials)
	route.Post(utils.CheckRegisterURI, middlewares.RateLimit, handlers.CheckRegister)
}

// ProtectedRoutes registers the pages that need a session.
func ProtectedRoutes(route fiber.Router) {
	route.Get(utils.AppURI, middlewares.Verify, handlers.DashboardPage)
	route.Post(utils.LogoutURI, middlewares.Verify, handlers.PostLogout)
}
