package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/flori92/lokali-platform-sub000/internal/infra/config"
	"github.com/flori92/lokali-platform-sub000/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	List(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	Check(c *gin.Context)
}

type PropertyHTTP interface {
	Catalog(c *gin.Context)
	Overview(c *gin.Context)
	Block(c *gin.Context)
}

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type ReviewHTTP interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
}

type Handlers struct {
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Property     PropertyHTTP
	Pricing      PricingHTTP
	Review       ReviewHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Property != nil {
		api.GET("/properties", h.Property.Catalog)
		api.GET("/properties/:id", h.Property.Overview)
		api.POST("/properties/:id/blocks", h.Property.Block)
	}
	if h.Availability != nil {
		api.GET("/properties/:id/calendar", h.Availability.Calendar)
		api.GET("/properties/:id/availability", h.Availability.Check)
	}
	if h.Pricing != nil {
		api.GET("/properties/:id/quote", h.Pricing.Quote)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.GET("/bookings", h.Booking.List)
	}
	if h.Review != nil {
		api.POST("/bookings/:id/review", h.Review.Submit)
		api.GET("/properties/:id/reviews", h.Review.List)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
