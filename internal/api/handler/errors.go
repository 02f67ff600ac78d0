package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/pkg/logger"
)

// errorResponse is the error envelope of every route. Error carries the
// underlying cause of unexpected failures, or the offending fields of a
// request that failed validation.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// routeErrors holds the route-specific wording for bad requests and
// unexpected failures. Known domain errors have fixed wording.
type routeErrors struct {
	missing   string
	invalidID string
	internal  string
}

func (r routeErrors) invalid() string {
	if r.invalidID != "" {
		return r.invalidID
	}
	return r.missing
}

// respondError maps err to its status code and writes the envelope.
func respondError(c echo.Context, err error, r routeErrors) error {
	status, msg := classify(err, r)
	if status != http.StatusInternalServerError {
		return c.JSON(status, errorResponse{Message: msg, Error: invalidDetail(err)})
	}

	logger.FromContext(c.Request().Context()).Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(r.internal)

	return c.JSON(status, errorResponse{Message: r.internal, Error: err.Error()})
}

func classify(err error, r routeErrors) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, r.missing
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, r.invalid()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already taken"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrOutfitNotFound):
		return http.StatusNotFound, "Outfit not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "Comment not found"
	case errors.Is(err, domain.ErrNothingDeleted):
		return http.StatusNotFound, "No outfits found to delete"
	}
	return http.StatusInternalServerError, r.internal
}

// invalidRequest is a missing-fields bad request that knows which fields were
// at fault.
type invalidRequest struct {
	detail string
}

func (e *invalidRequest) Error() string { return e.detail }

func (e *invalidRequest) Unwrap() error { return domain.ErrMissingFields }

func invalidDetail(err error) string {
	var ir *invalidRequest
	if errors.As(err, &ir) {
		return ir.detail
	}
	return ""
}

// bindAndValidate binds the request body and runs struct validation. Any
// failure is reported as a missing-fields bad request.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &invalidRequest{detail: "malformed request body"}
	}
	if err := c.Validate(req); err != nil {
		return &invalidRequest{detail: err.Error()}
	}
	return nil
}
