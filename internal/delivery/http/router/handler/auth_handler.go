// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/delivery/http/response"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for identity and login handlers.
type AuthHandler struct {
	authn  usecase.AuthnUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authn usecase.AuthnUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authn:  authn,
		logger: logger,
	}
}

// identityView is the outward shape of an identity; the password hash never leaves the server.
type identityView struct {
	ID    string   `json:"id"`
	Login string   `json:"login"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// loginView is the outward shape of a successful login.
type loginView struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// Signup handles the identity registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	identity, err := h.authn.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := identityView{
		ID:    identity.ID.String(),
		Login: identity.Login,
		Email: identity.Email,
		Roles: identity.Roles.ToStrings(),
	}

	return response.Success(c, http.StatusCreated, view, "Identity registered successfully")
}

// Login handles the password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authn.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLoginView(output), "Login successful")
}

// GoogleLogin handles the federated login request carrying a Google ID token.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var input usecase.FederatedLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid federated login input")
	}
	if input.Assertion == "" {
		// Accept the conventional field name used by Google's client libraries.
		input.Assertion = c.FormValue("id_token")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authn.FederatedLogin(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLoginView(output), "Federated login successful")
}

// Me returns the resolved principal for the presented access token.
func (h *AuthHandler) Me(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c.Request().Context())
	if principal == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on request")
	}

	view := identityView{
		Login: principal.Name(),
		Email: principal.Email(),
		Roles: principal.Authorities(),
	}
	if identity := principal.Identity(); identity != nil {
		view.ID = identity.ID.String()
	}

	return response.Success(c, http.StatusOK, view, "Principal resolved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func toLoginView(output *usecase.LoginOutput) loginView {
	return loginView{
		AccessToken:      output.AccessToken,
		RefreshToken:     output.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        output.ExpiresIn,
		RefreshExpiresIn: output.RefreshExpiresIn,
	}
}
