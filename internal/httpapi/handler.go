package httpapi

import (
	"errors"
	"net/http"

	"github.com/bookstore/storefront/internal/auth"
	"github.com/bookstore/storefront/internal/metrics"
	"github.com/bookstore/storefront/internal/orders"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the storefront JSON API.
type Handler struct {
	catalog    *repo.CatalogRepository
	categories *repo.CategoryRepository
	accounts   *auth.Service
	gate       *auth.Gate
	orders     *orders.Manager
	log        *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(catalog *repo.CatalogRepository, categories *repo.CategoryRepository, accounts *auth.Service, gate *auth.Gate, orderManager *orders.Manager, log *zap.Logger) *Handler {
	return &Handler{
		catalog:    catalog,
		categories: categories,
		accounts:   accounts,
		gate:       gate,
		orders:     orderManager,
		log:        log,
	}
}

// NewRouter builds the gin engine. m may be nil; imagesDir may be empty
// to skip serving cover images.
func NewRouter(h *Handler, m *metrics.Metrics, imagesDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(h.log))
	if m != nil {
		router.Use(m.GinMiddleware())
	}

	if imagesDir != "" {
		router.Static("/images", imagesDir)
	}

	api := router.Group("/api")
	api.GET("/books", h.listBooks)
	api.GET("/filters", h.filters)
	api.GET("/rankings", h.rankings)
	api.GET("/categories", h.categoryTree)
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.GET("/user_info", h.userInfo)

	private := api.Group("")
	private.Use(h.gate.RequireCustomer())
	private.GET("/logout", h.logout)
	private.POST("/order", h.placeOrder)
	private.GET("/my_orders", h.myOrders)

	return router
}

// fail writes err as a JSON error. Business rejections carry their own
// message; anything else is logged and reported generically.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case orders.IsBusinessError(err),
		errors.Is(err, auth.ErrCustomerExists),
		errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
