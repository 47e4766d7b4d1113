package handler

import (
	"net/http"

	"pageturn/internal/apperr"
	"pageturn/internal/dto"
	"pageturn/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PasswordHandler answers with {success, message} on every path.
type PasswordHandler struct {
	log             *zap.Logger
	passwordService service.PasswordService
}

func NewPasswordHandler(log *zap.Logger, passwordService service.PasswordService) *PasswordHandler {
	return &PasswordHandler{
		log:             log,
		passwordService: passwordService,
	}
}

func (h *PasswordHandler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return h.failure(c, apperr.Validation("Email is required"))
	}

	if err := h.passwordService.ForgotPassword(ctx, req.Email); err != nil {
		return h.failure(c, err)
	}

	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "OTP sent successfully",
	})
}

func (h *PasswordHandler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return h.failure(c, apperr.Validation("invalid req body"))
	}

	if err := h.passwordService.ResetPassword(ctx, &req); err != nil {
		return h.failure(c, err)
	}

	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}

func (h *PasswordHandler) failure(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnknown {
		h.log.Error("password request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.JSON(kind.Status(), &dto.MessageResponse{
		Success: false,
		Message: apperr.PublicMessage(err),
	})
}
