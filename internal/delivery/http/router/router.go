// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"libris/internal/delivery/http/middleware"
	"libris/internal/delivery/http/router/handler"
	"libris/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	OAuthHandler   *handler.OAuthHandler
	AuthorHandler  *handler.AuthorHandler
	BookHandler    *handler.BookHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	oauthHandler   *handler.OAuthHandler
	authorHandler  *handler.AuthorHandler
	bookHandler    *handler.BookHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		oauthHandler:   params.OAuthHandler,
		authorHandler:  params.AuthorHandler,
		bookHandler:    params.BookHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public identity endpoints
	e.POST("/users", r.authHandler.Signup)
	e.POST("/login", r.authHandler.Login)
	e.POST("/login/google", r.authHandler.GoogleLogin)

	// OAuth2 protocol surface. The token-style endpoints authenticate the
	// calling client themselves, so no bearer gate applies.
	oauthGroup := e.Group("/oauth2")
	{
		oauthGroup.POST("/token", r.oauthHandler.Token)
		oauthGroup.GET("/jwks", r.oauthHandler.JWKS)
		oauthGroup.POST("/introspect", r.oauthHandler.Introspect)
		oauthGroup.POST("/revoke", r.oauthHandler.Revoke)
		oauthGroup.GET("/authorize", r.oauthHandler.Authorize, r.authMiddleware.Authenticate)
	}

	// Client registration is a management operation.
	e.POST("/clients", r.oauthHandler.RegisterClient,
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireAuthority(string(entity.RoleGerente)))

	// Current-principal endpoint
	e.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)

	// Author catalog: reads are open to operators, writes are management-only
	authorGroup := e.Group("/authors")
	authorGroup.Use(r.authMiddleware.Authenticate)
	{
		requireManager := r.authMiddleware.RequireAuthority(string(entity.RoleGerente))
		requireStaff := r.authMiddleware.RequireAnyAuthority(
			string(entity.RoleOperador), string(entity.RoleGerente))

		authorGroup.POST("", r.authorHandler.Create, requireManager)
		authorGroup.GET("", r.authorHandler.List, requireStaff)
		authorGroup.GET("/:id", r.authorHandler.Get, requireStaff)
		authorGroup.PUT("/:id", r.authorHandler.Update, requireManager)
		authorGroup.DELETE("/:id", r.authorHandler.Delete, requireManager)
	}

	// Book catalog: operators and managers
	bookGroup := e.Group("/books")
	bookGroup.Use(r.authMiddleware.Authenticate)
	bookGroup.Use(r.authMiddleware.RequireAnyAuthority(
		string(entity.RoleOperador), string(entity.RoleGerente)))
	{
		bookGroup.POST("", r.bookHandler.Create)
		bookGroup.GET("", r.bookHandler.List)
		bookGroup.GET("/:id", r.bookHandler.Get)
		bookGroup.PUT("/:id", r.bookHandler.Update)
		bookGroup.DELETE("/:id", r.bookHandler.Delete)
	}
}
