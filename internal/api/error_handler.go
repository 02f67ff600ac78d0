package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse matches the envelope written by the handlers.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler renders errors that reach Echo itself: unknown routes,
// wrong methods and panics recovered by middleware. Handler-level domain
// errors are already written by the handlers.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Server error", Error: err.Error()}
}
