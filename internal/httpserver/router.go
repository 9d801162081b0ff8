package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// orderAccepter is the slice of the order service the handler needs.
type orderAccepter interface {
	Accept(ctx context.Context, order map[string]any) (string, error)
}

// Deps carries the collaborators the routes depend on.
type Deps struct {
	OrderSvc        orderAccepter
	StoreConfigured bool
}

// buildRouter wires routes for the API. Every response, preflight and errors
// included, carries the permissive cross-origin headers.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Accept"},
		MaxAge:          24 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.StoreConfigured))

	router.POST("/api/orders", ordersHandler(logger, deps))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed", "success": false})
	})

	return router
}
