package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/api/handler"
	"github.com/Sypyx/certificatetrackermvp/internal/api/middleware"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
	"github.com/Sypyx/certificatetrackermvp/internal/infrastructure/gateway"
	"github.com/Sypyx/certificatetrackermvp/internal/infrastructure/session"
	"github.com/Sypyx/certificatetrackermvp/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("certtrack"))

	e.Renderer = NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Upstream clients ---
	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout}
	identity := gateway.NewIdentityClient(cfg.Upstream.AuthURL, httpClient, log)
	directory := gateway.NewDirectoryClient(cfg.Upstream.UsersURL, httpClient, log)
	certs := gateway.NewCertificateClient(cfg.Upstream.CertificatesURL, httpClient, log)
	notify := gateway.NewNotificationClient(cfg.Upstream.NotifyURL, httpClient, log)

	// --- Services ---
	store := session.NewCookieStore(cfg.Session.CookieSecure, cfg.Session.TTL)
	guard := service.NewInflightGuard()

	authService := service.NewAuthService(identity, log)
	directoryService := service.NewDirectoryService(directory, notify, guard, log)
	certService := service.NewCertificateService(certs, notify, guard, log)
	transferService := service.NewTransferService(certs, guard, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, store)
	usersHandler := handler.NewUsersHandler(directoryService, authService, store)
	certHandler := handler.NewCertificatesHandler(certService, store)
	transferHandler := handler.NewTransferHandler(transferService, certHandler)

	e.Use(middleware.WithSession(store))

	// --- Entry and identity routes ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, service.PathLogin)
	}, middleware.Bootstrap(service.ViewLogin))

	e.GET(service.PathLogin, authHandler.LoginPage, middleware.Bootstrap(service.ViewLogin))
	e.POST(service.PathLogin, authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Directory view (managers only) ---
	users := e.Group(service.PathUsers,
		middleware.Bootstrap(service.ViewUsers),
		middleware.RBAC(domain.RoleManager))
	users.GET("", usersHandler.List)
	users.POST("", usersHandler.Create)
	users.GET("/:id/notify", usersHandler.NotifyConfirm)
	users.POST("/:id/notify", usersHandler.Notify)

	// --- Certificate view ---
	certGroup := e.Group(service.PathCertificates,
		middleware.Bootstrap(service.ViewCertificates))
	certGroup.GET("", certHandler.List)
	certGroup.GET("/:id/notify/email", certHandler.NotifyEmailConfirm)
	certGroup.POST("/:id/notify/email", certHandler.NotifyEmail)
	certGroup.GET("/:id/notify/sms", certHandler.NotifySMSConfirm)
	certGroup.POST("/:id/notify/sms", certHandler.NotifySMS)

	managed := certGroup.Group("", middleware.RBAC(domain.RoleManager))
	managed.POST("/submit", certHandler.Submit)
	managed.GET("/:id/delete", certHandler.DeleteConfirm)
	managed.POST("/:id/delete", certHandler.Delete)
	managed.GET("/export", transferHandler.Export)
	managed.POST("/import", transferHandler.Import)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]string{
		"auth":          cfg.Upstream.AuthURL,
		"users":         cfg.Upstream.UsersURL,
		"certificates":  cfg.Upstream.CertificatesURL,
		"notifications": cfg.Upstream.NotifyURL,
	}, httpClient)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
