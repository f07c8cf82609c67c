package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/reading-room-manager/internal/config"
	"github.com/iliyamo/reading-room-manager/internal/handler"
	"github.com/iliyamo/reading-room-manager/internal/middleware"
)

// RegisterRoutes wires the health check and global middleware on the
// provided Echo instance.  The API is consumed by a browser frontend from
// another origin, so CORS is left wide open.  Rate limiting applies to all
// routes and degrades to a no-op when Redis is unavailable.
func RegisterRoutes(e *echo.Echo, rdb *redis.Client) {
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	// Health endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)
}

// RegisterStudents registers the student record endpoints under /students.
// The read-only history endpoint is additionally wrapped in the Redis
// response cache; the listing endpoint is not cached because it carries the
// lazy month-reconciliation write.
func RegisterStudents(e *echo.Echo, h *handler.StudentHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/students")
	// List all students, reconciling the current month into each record.
	g.GET("", h.ListStudents)
	// Payment history for one seat (cacheable, short TTL).
	g.GET("/:seat/history", h.GetHistory, cache)
	// Create a new record or overwrite an existing one by seat.
	g.POST("", h.UpsertStudent)
	// Flip the attendance flag.
	g.PATCH("/:seat/attendance", h.ToggleAttendance)
	// Flip one month's paid flag in the payment history.
	g.PATCH("/:seat/payment/:month", h.TogglePayment)
	// Set one month's paid value in the separate fee history.
	g.PATCH("/:seat/fee-history", h.UpdateFeeHistory)
	// Hand a fee reminder to the delivery queue.
	g.POST("/:seat/send-alert", h.SendAlert)
	// Remove a record; idempotent.
	g.DELETE("/:seat", h.DeleteStudent)
	// Record a payment with an amount for one month.
	g.POST("/:seat/pay", h.RecordPayment)
}
