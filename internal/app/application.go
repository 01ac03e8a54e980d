package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"checkout-session-service/internal/config"
	"checkout-session-service/internal/handlers"
	"checkout-session-service/internal/middleware"
	"checkout-session-service/internal/payments"
	"checkout-session-service/internal/service"
	"checkout-session-service/pkg/logger"
)

type Application struct {
	cfg *config.Config

	services serviceContainer
	handlers handlerContainer

	router *gin.Engine
	server *http.Server
}

type serviceContainer struct {
	Auth     *service.AuthService
	Checkout *service.CheckoutService
}

type handlerContainer struct {
	Session *handlers.SessionHandler
}

func New(cfg *config.Config, provider payments.Provider) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("payment provider is required")
	}

	app := &Application{cfg: cfg}

	app.initServices(provider)
	app.initHandlers()
	app.initRouter()

	// The write timeout covers the provider call, which has its own 30s client timeout.
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initServices(provider payments.Provider) {
	a.services = serviceContainer{
		Auth:     service.NewAuthService(a.cfg.SecretKey),
		Checkout: service.NewCheckoutService(provider),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Session: handlers.NewSessionHandler(a.services.Checkout),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = false
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware())

	if len(a.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  a.cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", a.cfg.SecretHeader},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/health", handlers.Health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.POST("/session",
		middleware.SecretKeyMiddleware(a.services.Auth, a.cfg.SecretHeader),
		a.handlers.Session.CreateSession,
	)

	router.NoRoute(handlers.NotFound)

	a.router = router
}
