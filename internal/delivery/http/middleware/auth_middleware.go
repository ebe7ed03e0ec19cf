package middleware

import (
	"strings"

	deliverycontext "libris/internal/delivery/context"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/service"
	"libris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware is the request gate: it verifies the bearer token and swaps
// the token's stale claims for a freshly resolved principal before any
// handler runs.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authn    usecase.AuthnUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, authn usecase.AuthnUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, authn: authn}
}

// Authenticate validates the access token and attaches the resolved principal
// to the request context. Any defect in the credential fails the request with
// the same generic unauthorized error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrInvalidToken.WrapMessage("authorization header missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrInvalidToken.WrapMessage("authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Parse(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken.WrapMessage("token verification failed")
		}

		// Refresh tokens never authenticate resource requests.
		if claims.TokenType != service.TokenTypeAccess {
			return domainerrors.ErrInvalidToken.WrapMessage("token is not an access token")
		}

		principal, err := m.authn.ResolveBearer(c.Request().Context(), claims)
		if err != nil {
			return errors.Wrap(err, "failed to resolve bearer principal")
		}

		ctx := deliverycontext.WithPrincipal(c.Request().Context(), principal)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAuthority is a middleware factory gating a route group on a single
// authority. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAuthority(authority string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := deliverycontext.GetPrincipal(c.Request().Context())
			if principal == nil {
				return domainerrors.ErrInvalidToken.WrapMessage("no principal on request")
			}

			if !principal.HasAuthority(authority) {
				return domainerrors.ErrAccessDenied.WrapMessage("missing required authority " + authority)
			}

			return next(c)
		}
	}
}

// RequireAnyAuthority gates a route on at least one of the given authorities.
func (m *AuthMiddleware) RequireAnyAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := deliverycontext.GetPrincipal(c.Request().Context())
			if principal == nil {
				return domainerrors.ErrInvalidToken.WrapMessage("no principal on request")
			}

			for _, authority := range authorities {
				if principal.HasAuthority(authority) {
					return next(c)
				}
			}

			return domainerrors.ErrAccessDenied.WrapMessage("missing required authority")
		}
	}
}
