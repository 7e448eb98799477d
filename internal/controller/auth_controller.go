package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/internal/auth"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/middleware"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/response"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	service auth.Service
}

func CreateAuthController(g *echo.Group, service auth.Service) {
	c := AuthController{
		service: service,
	}
	g.POST("/auth/login", c.Login)
	g.POST("/auth/logout", c.Logout)
	g.GET("/auth/status", c.Status)
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	data, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Logged in", data)
}

// Logout only acknowledges; tokens are stateless and simply dropped by the
// client.
func (c *AuthController) Logout(e echo.Context) error {
	return response.WriteSuccessResponse(e, "Logged out", nil)
}

func (c *AuthController) Status(e echo.Context) error {
	return response.WriteSuccessResponse(e, "", c.service.Status(e.Request().Context(), middleware.BearerToken(e)))
}
