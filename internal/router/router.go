package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/finance-ledger/internal/config"
	"github.com/iliyamo/finance-ledger/internal/handler"
	"github.com/iliyamo/finance-ledger/internal/middleware"
)

// Register wires every route of the service onto the provided Echo
// instance. Unauthenticated operations (register, login, health) sit
// outside the access gate; everything touching per-user data runs
// behind middleware.JWTAuth. CORS uses the configured origin
// allow-list with credentials enabled, mirroring the original
// deployment.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, t *handler.TransactionHandler, cache *middleware.ListCache) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.POST("/register", a.Register)
	api.POST("/login", a.Login)

	// Protected routes: the access gate verifies the bearer token and
	// injects the subject id before any handler runs.
	auth := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/transactions", t.List, cache.Middleware())
	auth.POST("/transactions", t.Create)
	auth.PUT("/transactions/:id", t.Update)
	auth.DELETE("/transactions/:id", t.Delete)
	auth.PUT("/editpasswd", a.ChangePassword)
	auth.DELETE("/deleteacc", a.DeleteAccount)
}
