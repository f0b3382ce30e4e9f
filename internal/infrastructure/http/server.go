package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stripe/stripe-go/v79"
	handlers "github.com/techforge-labs/fulfillment/internal/adapter/handler/http"
	"github.com/techforge-labs/fulfillment/internal/config"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"github.com/techforge-labs/fulfillment/internal/infrastructure/database"
	stripeProvider "github.com/techforge-labs/fulfillment/internal/infrastructure/provider/stripe"
	"github.com/techforge-labs/fulfillment/internal/middleware/auth"
	"github.com/techforge-labs/fulfillment/internal/usecase"
	"go.uber.org/zap"
)

// Server is the HTTP edge of the fulfillment service.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	store    provider.ObjectStore
	notifier provider.Notifier
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewServer creates the HTTP server with all collaborators injected.
func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, store provider.ObjectStore, notifier provider.Notifier) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Install the Stripe API key process-wide.
	stripe.Key = cfg.Service.StripeSecretKey

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.SiteURL},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		repos:    repos,
		store:    store,
		notifier: notifier,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	catalog := entity.DefaultCatalog()

	gateway := stripeProvider.NewProvider(
		s.config.Service.StripeWebhookSecret,
		s.config.Service.SiteURL,
		s.logger,
	)

	fulfillment := usecase.NewFulfillmentService(
		s.repos.License,
		s.repos.Profile,
		s.repos.Affiliate,
		s.notifier,
		catalog,
		s.config.Service.DownloadBase,
		s.logger,
	)
	entitlement := usecase.NewEntitlementService(s.repos.License, catalog, s.logger)
	packager := usecase.NewPackager(s.config.Service.Brand)

	checkoutHandler := handlers.NewCheckoutHandler(s.logger, gateway, s.repos.Profile, s.config.Service.PriceIDs)
	webhookHandler := handlers.NewWebhookHandler(s.logger, gateway, fulfillment)
	downloadHandler := handlers.NewDownloadHandler(s.logger, entitlement, s.store, packager)
	licenseHandler := handlers.NewLicenseHandler(s.logger, s.repos.License, s.repos.Affiliate)

	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Public surface
	v1 := s.echo.Group("/api/v1")
	v1.POST("/checkout", checkoutHandler.CreateCheckout)

	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
	s.echo.GET("/download", downloadHandler.Download)

	// Admin surface
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.AdminJWTSecret,
		Logger: s.logger,
	}
	admin := v1.Group("", auth.JWTMiddleware(jwtConfig))
	admin.GET("/licenses/:key", licenseHandler.GetLicense)
	admin.POST("/licenses/:key/revoke", licenseHandler.RevokeLicense)
	admin.GET("/affiliates/:code/events", licenseHandler.GetAffiliateEvents)
}
