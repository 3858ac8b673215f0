package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
	sessions ports.SessionService
	resets   ports.PasswordResetService

	// revealResetCodes surfaces issued codes in the forgot-password response.
	// Never enabled in production.
	revealResetCodes bool
}

func NewAuthHandler(identity ports.IdentityService, sessions ports.SessionService, resets ports.PasswordResetService, revealResetCodes bool) *AuthHandler {
	return &AuthHandler{
		identity:         identity,
		sessions:         sessions,
		resets:           resets,
		revealResetCodes: revealResetCodes,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type phoneLoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type messageResponse struct {
	Message   string `json:"message"`
	DebugCode string `json:"debug_code,omitempty"`
}

// resetAck is the uniform forgot-password acknowledgment; its wording never
// depends on whether the account exists.
const resetAck = "if the account exists, a reset code has been sent"

// Register creates a new user account with password credentials.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.identity.Register(c.Request().Context(), req.Email, req.Password, req.Username, req.Phone)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrWeakPassword), errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates by email and password and returns a session token.
//
// @Summary      Login with email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.identity.LoginEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.loginError(c, err)
	}
	return h.session(c, user)
}

// LoginPhone authenticates by phone number and password.
//
// @Summary      Login with phone
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      phoneLoginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login/phone [post]
func (h *AuthHandler) LoginPhone(c echo.Context) error {
	var req phoneLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.identity.LoginPhone(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return h.loginError(c, err)
	}
	return h.session(c, user)
}

// ForgotPassword requests a reset code. The acknowledgment is identical for
// known and unknown emails.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	outcome, err := h.resets.IssueCode(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	resp := messageResponse{Message: resetAck}
	if h.revealResetCodes {
		resp.DebugCode = outcome.Code
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword consumes a reset code and sets a new password.
//
// @Summary      Reset password with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code, and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err := h.resets.ConsumeCode(c.Request().Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidResetCode),
			errors.Is(err, domain.ErrExpiredResetCode),
			errors.Is(err, domain.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// Me returns the authenticated user's minimal payload from session claims.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, email, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"id":       id,
		"email":    email,
		"username": username,
	})
}

func (h *AuthHandler) loginError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	return err
}

func (h *AuthHandler) session(c echo.Context, user *domain.User) error {
	token, err := h.sessions.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
