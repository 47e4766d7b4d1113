package handler

import (
	"errors"
	"fmt"
	"net/http"

	"pageturn/internal/apperr"
	"pageturn/internal/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler renders every error as the {success:false, error} envelope.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var message string

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			code = apperr.KindOf(err).Status()
			message = apperr.PublicMessage(err)
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, dto.ErrorResponse{Success: false, Error: message})
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

func validationError(err error) error {
	return apperr.Validation("%s", validationMessage(err))
}
