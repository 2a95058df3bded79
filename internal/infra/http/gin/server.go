package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/infra/config"
	"resortdesk/internal/infra/obs"
)

type ReservationHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Delete(c *gin.Context)
	Pay(c *gin.Context)
	Checkout(c *gin.Context)
	Cancel(c *gin.Context)
	Pending(c *gin.Context)
	WhatsApp(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
}

type RoomHTTP interface {
	List(c *gin.Context)
}

type ExpenseHTTP interface {
	List(c *gin.Context)
	Summary(c *gin.Context)
	Create(c *gin.Context)
	Delete(c *gin.Context)
}

type ExportHTTP interface {
	ReservationsCSV(c *gin.Context)
	ReservationsPDF(c *gin.Context)
}

type AuthHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

type Handlers struct {
	Reservation    ReservationHTTP
	Availability   AvailabilityHTTP
	Room           RoomHTTP
	Expense        ExpenseHTTP
	Export         ExportHTTP
	Auth           AuthHTTP
	AuthMiddleware gin.HandlerFunc
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
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Content-Disposition",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
	}

	protected := api.Group("")
	if h.AuthMiddleware != nil {
		protected.Use(h.AuthMiddleware)
	}
	if h.Reservation != nil {
		protected.GET("/reservations", h.Reservation.List)
		protected.POST("/reservations", h.Reservation.Create)
		protected.GET("/reservations/pending", h.Reservation.Pending)
		protected.GET("/reservations/:id", h.Reservation.Get)
		protected.DELETE("/reservations/:id", h.Reservation.Delete)
		protected.POST("/reservations/:id/pay", h.Reservation.Pay)
		protected.POST("/reservations/:id/checkout", h.Reservation.Checkout)
		protected.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		protected.GET("/reservations/:id/whatsapp", h.Reservation.WhatsApp)
	}
	if h.Availability != nil {
		protected.POST("/availability/check", h.Availability.Check)
	}
	if h.Room != nil {
		protected.GET("/rooms", h.Room.List)
	}
	if h.Expense != nil {
		protected.GET("/expenses", h.Expense.List)
		protected.GET("/expenses/summary", h.Expense.Summary)
		protected.POST("/expenses", h.Expense.Create)
		protected.DELETE("/expenses/:id", h.Expense.Delete)
	}
	if h.Export != nil {
		protected.GET("/exports/reservations.csv", h.Export.ReservationsCSV)
		protected.GET("/exports/reservations.pdf", h.Export.ReservationsPDF)
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
