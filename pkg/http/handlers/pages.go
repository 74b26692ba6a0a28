package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/authforms/pkg/forms"
	"github.com/oarkflow/authforms/pkg/http/responses"
	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/utils"
)

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func LandingPage(c *fiber.Ctx) error {
	return responses.Render(c, utils.LandingTemplate, pageData(c, fiber.Map{
		"Title":  "Bienvenido",
		"Slides": []int{0, 1, 2},
	}))
}

func LoginPage(c *fiber.Ctx) error {
	return responses.Render(c, utils.LoginTemplate, pageData(c, fiber.Map{
		"Title": "Iniciar sesión",
		"Form":  forms.Login(),
	}))
}

func RegisterPage(c *fiber.Ctx) error {
	return responses.Render(c, utils.RegisterTemplate, pageData(c, fiber.Map{
		"Title": "Registro",
		"Form":  forms.Register(),
	}))
}

func DashboardPage(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(models.User)
	return responses.Render(c, utils.AppTemplate, pageData(c, fiber.Map{
		"Title":    "Inicio",
		"Nombre":   user.Nombre,
		"Apellido": user.Apellido,
		"Email":    user.Email,
	}))
}

// pageData adds the pending flash message and the route table to data.
func pageData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	data["Flash"] = flash.Get(c)
	data["URIs"] = utils.GetURIs()
	return data
}

func renderErrorPage(c *fiber.Ctx, statusCode int, title, message, description, technical, retryURL string) error {
	errorID := fmt.Sprintf("ERR-%d-%d", time.Now().Unix(), statusCode)
	data := models.ErrorPageData{
		Title:       title,
		StatusCode:  statusCode,
		Message:     message,
		Description: description,
		Technical:   technical,
		RetryURL:    retryURL,
		ErrorID:     errorID,
	}
	c.Status(statusCode)
	return responses.Render(c, utils.ErrorTemplate, data)
}
