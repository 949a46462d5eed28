// Package api is the HTTP surface of the service: catalog browsing, the order
// wizard, account management, quotes and business intake.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/account"
	"github.com/example/laundryhub/pkg/business"
	"github.com/example/laundryhub/pkg/config"
	"github.com/example/laundryhub/pkg/models"
	"github.com/example/laundryhub/pkg/orders"
	"github.com/example/laundryhub/pkg/places"
	"github.com/example/laundryhub/pkg/quotes"
	"github.com/example/laundryhub/pkg/repository"
	"github.com/example/laundryhub/pkg/wizard"
)

// PlacesClient is what the address step needs from the autocomplete API.
type PlacesClient interface {
	Suggest(ctx context.Context, query string) ([]places.Suggestion, error)
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	drafts   *wizard.Store
	orders   *orders.Service
	account  *account.Service
	quotes   *quotes.Service
	business *business.Service
	places   PlacesClient
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	drafts *wizard.Store,
	orderSvc *orders.Service,
	accountSvc *account.Service,
	quoteSvc *quotes.Service,
	businessSvc *business.Service,
	placesClient PlacesClient,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		drafts:   drafts,
		orders:   orderSvc,
		account:  accountSvc,
		quotes:   quoteSvc,
		business: businessSvc,
		places:   placesClient,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/services", s.listServices)
			catalog.GET("/services/:service_id/categories", s.listCategories)
			catalog.GET("/services/:service_id/items", s.listItems)
		}

		drafts := v1.Group("/drafts")
		{
			drafts.POST("", s.createDraft)
			drafts.GET("/:id", s.getDraft)
			drafts.PUT("/:id/service", s.setDraftService)
			drafts.POST("/:id/items", s.adjustDraftItem)
			drafts.PUT("/:id/address", s.setDraftAddress)
			drafts.PUT("/:id/schedule", s.setDraftSchedule)
			drafts.POST("/:id/submit", s.submitDraft)
		}

		ordersGroup := v1.Group("/orders")
		{
			ordersGroup.GET("", s.listOrders)
			ordersGroup.GET("/:id", s.getOrder)
			ordersGroup.GET("/:id/summary", s.getOrderSummary)
			ordersGroup.GET("/:id/audit", s.getOrderAudit)
			ordersGroup.POST("/:id/cancel", s.cancelOrder)
			ordersGroup.POST("/:id/payment", s.retryPayment)
			ordersGroup.PUT("/:id/status", s.updateOrderStatus)
		}

		v1.GET("/profile", s.getProfile)
		v1.PUT("/profile", s.updateProfile)

		addresses := v1.Group("/addresses")
		{
			addresses.GET("", s.listAddresses)
			addresses.POST("", s.createAddress)
			addresses.DELETE("/:id", s.deleteAddress)
		}

		quotesGroup := v1.Group("/quotes")
		{
			quotesGroup.GET("", s.listQuotes)
			quotesGroup.POST("", s.requestQuote)
			quotesGroup.POST("/:id/respond", s.respondQuote)
			quotesGroup.POST("/:id/accept", s.acceptQuote)
			quotesGroup.POST("/:id/decline", s.declineQuote)
		}

		v1.POST("/business/inquiries", s.createBusinessInquiry)
		v1.GET("/places/suggest", s.suggestPlaces)
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the configured engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// customerID reads the caller identity set by the auth proxy in front of this
// service. An empty header means the proxy was bypassed.
func customerID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Customer-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Customer-ID header is required"})
		return "", false
	}
	return id, true
}

// fail maps domain errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, wizard.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrNotCancellable),
		errors.Is(err, quotes.ErrQuoteNotOpen),
		errors.Is(err, quotes.ErrNotQuoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrDraftIncomplete),
		errors.Is(err, wizard.ErrDeliveryBeforePickup),
		errors.Is(err, wizard.ErrScheduleIncomplete),
		errors.Is(err, wizard.ErrUnknownService),
		errors.Is(err, wizard.ErrItemOutsideService),
		errors.Is(err, quotes.ErrUnknownItem),
		errors.Is(err, quotes.ErrFixedPrice),
		errors.Is(err, business.ErrMissingContact):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
