package handler

import (
	"net/http"

	"pageturn/internal/dto"
	"pageturn/internal/service"
	"pageturn/internal/validation"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	user, token, err := h.authService.Register(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	user, token, err := h.authService.Login(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    user,
	})
}

func validationMessage(err error) string {
	return validation.Message(err)
}
