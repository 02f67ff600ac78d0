package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/api/metrics"
	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	errs := routeErrors{missing: "All fields are required", internal: "Error registering user"}

	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, errs)
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully!"})
}

// Login checks a username and password.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	errs := routeErrors{internal: "Server error"}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, domain.ErrInvalidCredentials, errs)
	}

	user, err := h.service.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return respondError(c, err, errs)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    toUserResponse(user),
	})
}

// Rename changes a user's username.
//
// @Summary      Update username
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path      string         true  "User ID"
// @Param        body    body      renameRequest  true  "New username"
// @Success      200     {object}  renameResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /user/{userId} [put]
func (h *UserHandler) Rename(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid user ID", internal: "Error updating username"}

	var req renameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	user, err := h.service.Rename(c.Request().Context(), c.Param("userId"), req.Username)
	if err != nil {
		return respondError(c, err, errs)
	}

	return c.JSON(http.StatusOK, renameResponse{
		Message: "Username updated successfully",
		User:    toUserResponse(user),
	})
}

// Delete removes an account together with its outfits and likes.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid user ID", internal: "Server error"}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, errs)
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// GetByUsername returns the public profile of a user.
//
// @Summary      Get user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /user/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", internal: "Error fetching user data"}

	user, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err, errs)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
