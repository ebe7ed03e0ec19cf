package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/delivery/http/response"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/service"
	"libris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OAuthHandler exposes the OAuth2 protocol endpoints: token, authorize,
// jwks, introspect, revoke and client registration.
type OAuthHandler struct {
	tokens   usecase.TokenUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(tokens usecase.TokenUsecase, tokenSvc service.TokenService, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		tokens:   tokens,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// clientCredentials pulls the caller's client credentials from HTTP Basic
// auth, falling back to the form body (client_secret_post).
func clientCredentials(c echo.Context) (string, string) {
	if id, secret, ok := c.Request().BasicAuth(); ok {
		return id, secret
	}

	return c.FormValue("client_id"), c.FormValue("client_secret")
}

// Token handles the token endpoint. The response body follows the RFC 6749
// shape rather than the application envelope.
func (h *OAuthHandler) Token(c echo.Context) error {
	clientID, clientSecret := clientCredentials(c)

	input := &usecase.TokenRequestInput{
		GrantType:    c.FormValue("grant_type"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Code:         c.FormValue("code"),
		RedirectURI:  c.FormValue("redirect_uri"),
		RefreshToken: c.FormValue("refresh_token"),
	}

	output, err := h.tokens.Token(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// Authorize issues a one-time authorization code for the authenticated
// principal. The browser redirect dance is left to the client; the code and
// target are returned directly.
func (h *OAuthHandler) Authorize(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c.Request().Context())
	if principal == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on request")
	}

	input := &usecase.AuthorizeInput{
		Principal:   principal,
		ClientID:    c.QueryParam("client_id"),
		RedirectURI: c.QueryParam("redirect_uri"),
	}

	code, err := h.tokens.Authorize(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"code":         code,
		"redirect_uri": input.RedirectURI,
	}, "Authorization code issued")
}

// JWKS publishes the signing key set for token verification by third parties.
func (h *OAuthHandler) JWKS(c echo.Context) error {
	keySet, err := h.tokenSvc.KeySet()
	if err != nil {
		return errors.Wrap(err, "failed to build key set")
	}

	return c.JSONBlob(http.StatusOK, keySet)
}

// Introspect reports token state per RFC 7662 after authenticating the client.
func (h *OAuthHandler) Introspect(c echo.Context) error {
	clientID, clientSecret := clientCredentials(c)

	output, err := h.tokens.Introspect(c.Request().Context(), &usecase.IntrospectInput{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Token:        c.FormValue("token"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// Revoke accepts a revocation request and returns 200 regardless of token
// state, as RFC 7009 requires.
func (h *OAuthHandler) Revoke(c echo.Context) error {
	clientID, clientSecret := clientCredentials(c)

	if err := h.tokens.Revoke(c.Request().Context(), &usecase.IntrospectInput{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Token:        c.FormValue("token"),
	}); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}

// RegisterClient handles OAuth2 client registration.
func (h *OAuthHandler) RegisterClient(c echo.Context) error {
	var input usecase.RegisterClientInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid client registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	client, err := h.tokens.RegisterClient(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"id":          client.ID.String(),
		"clientId":    client.ClientID,
		"redirectURI": client.RedirectURI,
		"scope":       client.Scope,
	}, "Client registered successfully")
}
