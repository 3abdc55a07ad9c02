package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"rentdesk_app_echo/internal/services"
)

// ErrorResponse is the single error shape exposed past the boundary: a
// human-readable message plus a machine-checkable kind. Stack traces and
// internal identifiers never cross it.
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// CustomErrorHandler creates a custom error handler for Echo
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := ErrorResponse{
		Message: "Something went wrong. Please try again later.",
		Kind:    "internal_error",
	}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		resp.Kind = "http_error"
		if msg, ok := he.Message.(string); ok && msg != "" {
			resp.Message = msg
		}
	case services.IsValidationError(err):
		code = http.StatusBadRequest
		resp.Message = err.Error()
		resp.Kind = services.ErrorKind(err)
	case errors.Is(err, services.ErrPersistence):
		code = http.StatusInternalServerError
		resp.Message = "A storage operation failed. Please try again later."
		resp.Kind = services.ErrorKind(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
		resp.Message = "The requested resource was not found."
		resp.Kind = "not_found"
	}

	// Log the error
	c.Logger().Error(err)

	if err := c.JSON(code, resp); err != nil {
		c.Logger().Error(err)
	}
}
