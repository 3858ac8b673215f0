package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
)

// OAuthHandler consumes verified provider profiles. The OAuth handshake
// itself runs upstream; by the time a request lands here the profile has
// already been vouched for by the provider's authorization server.
type OAuthHandler struct {
	identity ports.IdentityService
	sessions ports.SessionService
}

func NewOAuthHandler(identity ports.IdentityService, sessions ports.SessionService) *OAuthHandler {
	return &OAuthHandler{identity: identity, sessions: sessions}
}

type providerProfileRequest struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// Resolve finds or creates the user record for a verified provider profile
// and hands back a session token.
//
// @Summary      Resolve a verified OAuth profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        provider  path      string                  true  "Provider name (google, facebook, github)"
// @Param        body      body      providerProfileRequest  true  "Verified provider profile"
// @Success      200       {object}  authResponse
// @Failure      400       {object}  map[string]string
// @Router       /auth/oauth/{provider} [post]
func (h *OAuthHandler) Resolve(c echo.Context) error {
	provider := c.Param("provider")
	if !domain.KnownProvider(provider) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrUnknownProvider.Error()})
	}

	var req providerProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.identity.ResolveProvider(c.Request().Context(), ports.ProviderProfile{
		Provider: provider,
		Subject:  req.ID,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProvider) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
