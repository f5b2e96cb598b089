package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mouvement-ensemble/membership-portal/internal/api/handler"
	"github.com/mouvement-ensemble/membership-portal/internal/api/middleware"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// Dependencies is the explicit wiring for the router: the services and
// stores every handler and guard consults. Nothing here is a package-level
// singleton; each component receives what it needs.
type Dependencies struct {
	Auth   ports.AuthService
	Cards  ports.CardService
	Audit  ports.AuditRepository
	Redis  *redis.Client
	Mongo  *mongo.Database
	Cookie handler.CookieConfig
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("membership"))

	// Session resolution runs on every request; the guards below decide per
	// route what an absent session means.
	e.Use(middleware.Session(deps.Cookie.Secret, deps.Auth, deps.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	profileHandler := handler.NewProfileHandler(deps.Auth)
	cardHandler := handler.NewCardHandler(deps.Cards)
	verifyHandler := handler.NewVerifyHandler(deps.Cards)
	adminHandler := handler.NewAdminHandler(deps.Audit)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Member area (session required, any role) ---
	member := e.Group(ports.PathMemberArea, middleware.PrivateGuard())
	member.GET("", profileHandler.Dashboard)
	member.GET("/profile", profileHandler.Get)
	member.PUT("/profile", profileHandler.Update)
	member.POST("/profile/complete", profileHandler.Complete)
	member.GET("/card", cardHandler.Card)
	member.GET("/card/qr.png", cardHandler.QR)
	member.GET("/card/share", cardHandler.Share)

	// --- Admin area (admin role required) ---
	admin := e.Group(ports.PathAdminArea, middleware.AdminGuard())
	admin.GET("", adminHandler.Overview)

	// --- Public card verification (offline decode, never crashes) ---
	e.GET(ports.PathVerifyMember, verifyHandler.Verify)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.Mongo)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
