package httpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	cartsvc "agrimarket-cart/internal/service/cart"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartProvider interface {
	Open(ctx context.Context, sessionID string) (*cartsvc.Store, error)
	Forget(ctx context.Context, sessionID string) error
}

type SessionService interface {
	Issue(ctx context.Context) (string, error)
	Normalize(raw string) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router needs.
type Deps struct {
	Carts          CartProvider
	Sessions       SessionService
	Backend        Pinger
	TaxRate        decimal.Decimal
	AllowedOrigins []string
	Now            func() time.Time
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Carts == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("httpserver: cart provider and session service are required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		corsMw, err := corsMiddleware(deps.AllowedOrigins)
		if err != nil {
			return nil, err
		}
		router.Use(corsMw)
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Backend))

	h := &cartHandler{
		carts:    deps.Carts,
		sessions: deps.Sessions,
		taxRate:  deps.TaxRate,
		now:      deps.Now,
		logger:   logger,
	}

	router.POST("/sessions", h.createSession)

	session := router.Group("/sessions/:sessionId", sessionMiddleware(deps.Sessions))
	session.DELETE("", h.forgetSession)
	session.GET("/cart", h.getCart)
	session.DELETE("/cart", h.clearCart)
	session.POST("/cart/items", h.addItem)
	session.PATCH("/cart/items/:productId/:mode", h.updateQuantity)
	session.DELETE("/cart/items/:productId/:mode", h.removeItem)
	session.POST("/cart/drawer/toggle", h.toggleDrawer)
	session.POST("/cart/drawer/open", h.openDrawer)
	session.POST("/cart/drawer/close", h.closeDrawer)
	session.GET("/cart/order", h.orderPayload)

	return router, nil
}

func corsMiddleware(origins []string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors config: %w", err)
	}
	return cors.New(cfg), nil
}
