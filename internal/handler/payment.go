package handler

import (
	"net/http"

	"pageturn/internal/apperr"
	"pageturn/internal/dto"
	"pageturn/internal/middleware"
	"pageturn/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.paymentService.CreateOrder(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CreateOrderResponse{
		Success: true,
		Data:    order,
	})
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.VerifyPayment(ctx, middleware.UserID(c), &req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindVerification {
			return c.JSON(http.StatusOK, &dto.VerifyPaymentResponse{
				Success: false,
				Message: apperr.PublicMessage(err),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}
