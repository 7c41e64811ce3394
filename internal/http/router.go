package api

import (
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"seaferry/internal/config"
	h "seaferry/internal/http/handlers"
	"seaferry/internal/http/middleware"
)

// NewRouter wires middleware, handlers and route groups.
func NewRouter(env config.Env, db *sql.DB, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	app := h.NewAPI(env, db, rdb)
	auth := middleware.Auth([]byte(env.JWTSecret))
	admin := middleware.RequireAdmin()
	authLimiter := middleware.NewRateLimiter(env.AuthRateRPS, env.AuthRateBurst).Middleware()

	api := r.Group("/api")
	{
		api.GET("/health", app.Health)
		api.GET("/db-check", app.DBCheck)

		// Public catalog
		api.GET("/routes", app.ListRoutes)
		api.GET("/routes/:id", app.GetRoute)
		api.GET("/vessels", app.ListVessels)
		api.GET("/vessels/:id/capacity", app.CheckCapacity)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/register", app.Register)
		authGroup.POST("/login", authLimiter, app.Login)
		authGroup.POST("/password/forgot", authLimiter, app.ForgotPassword)
		authGroup.GET("/password/validate", app.ValidateResetToken)
		authGroup.POST("/password/reset", app.ResetPassword)

		// Bookings (authenticated)
		bookings := api.Group("/bookings", auth)
		bookings.POST("", app.CreateBooking)
		bookings.GET("", app.ListBookings)
		bookings.PUT("/draft", app.SaveDraft)
		bookings.GET("/draft", app.GetDraft)
		bookings.DELETE("/draft", app.ClearDraft)
		bookings.GET("/reference/:code", app.GetBookingByReference)
		bookings.GET("/:id", app.GetBooking)
		bookings.GET("/:id/ticket", app.GetBookingTicket)
		bookings.POST("/:id/cancel", app.CancelBooking)
		bookings.POST("/:id/confirm", admin, app.ConfirmBooking)
		bookings.POST("/:id/complete", admin, app.CompleteBooking)

		// Refunds
		refunds := api.Group("/refunds", auth)
		refunds.POST("", app.RequestRefund)
		refunds.GET("", app.ListRefunds)
		refunds.GET("/:id", app.GetRefund)
		refunds.POST("/:id/process", admin, app.ProcessRefund)

		// Back office
		adminGroup := api.Group("", auth, admin)
		adminGroup.POST("/routes", app.CreateRoute)
		adminGroup.PUT("/routes/:id", app.UpdateRoute)
		adminGroup.DELETE("/routes/:id", app.DeleteRoute)
		adminGroup.POST("/vessels", app.CreateVessel)
		adminGroup.PUT("/vessels/:id", app.UpdateVessel)
		adminGroup.DELETE("/vessels/:id", app.DeleteVessel)
		adminGroup.GET("/payments", app.ListPayments)
		adminGroup.PUT("/payments/:id/status", app.UpdatePaymentStatus)
		adminGroup.GET("/reports/revenue", app.RevenueReport)
		adminGroup.GET("/reports/routes/popular", app.PopularRoutesReport)
		adminGroup.GET("/reports/bookings/export", app.ExportBookings)
	}

	return r
}
