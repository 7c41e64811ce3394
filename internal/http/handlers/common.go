package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"seaferry/internal/cache"
	"seaferry/internal/config"
	"seaferry/internal/domain"
	"seaferry/internal/http/middleware"
	"seaferry/internal/repositories"
	"seaferry/internal/services"
	"seaferry/internal/utils"
)

// API bundles shared dependencies; services are built per request so each
// carries the request id for event logging.
type API struct {
	DB     *sql.DB
	Redis  *redis.Client
	Env    config.Env
	Drafts cache.DraftStore
	Cache  cache.CapacityCache
}

func NewAPI(env config.Env, db *sql.DB, rdb *redis.Client) *API {
	return &API{
		DB:     db,
		Redis:  rdb,
		Env:    env,
		Drafts: cache.NewDraftStore(rdb),
		Cache:  cache.CapacityCache{Client: rdb, TTL: env.CapacityTTL},
	}
}

func (a *API) routes() services.RouteService {
	return services.RouteService{
		Routes:  repositories.RouteRepository{DB: a.DB},
		Vessels: repositories.VesselRepository{DB: a.DB},
	}
}

func (a *API) capacity() services.CapacityService {
	return services.CapacityService{
		Routes:   repositories.RouteRepository{DB: a.DB},
		Bookings: repositories.BookingRepository{DB: a.DB},
		Cache:    a.Cache,
	}
}

func (a *API) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		DB:        a.DB,
		Routes:    repositories.RouteRepository{DB: a.DB},
		Bookings:  repositories.BookingRepository{DB: a.DB},
		Payments:  repositories.PaymentRepository{DB: a.DB},
		Refunds:   repositories.RefundRepository{DB: a.DB},
		Drafts:    a.Drafts,
		Cache:     a.Cache,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) drafts() services.DraftService {
	return services.DraftService{Store: a.Drafts}
}

func (a *API) payments(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Payments:  repositories.PaymentRepository{DB: a.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) refunds(c *gin.Context) services.RefundService {
	return services.RefundService{
		Bookings:  repositories.BookingRepository{DB: a.DB},
		Payments:  repositories.PaymentRepository{DB: a.DB},
		Refunds:   repositories.RefundRepository{DB: a.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) tickets(c *gin.Context) services.TicketService {
	return services.TicketService{
		Bookings:  repositories.BookingRepository{DB: a.DB},
		Routes:    repositories.RouteRepository{DB: a.DB},
		Payments:  repositories.PaymentRepository{DB: a.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) reports(c *gin.Context) services.ReportsService {
	return services.ReportsService{DB: a.DB, RequestID: middleware.GetRequestID(c)}
}

func (a *API) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:      repositories.UserRepository{DB: a.DB},
		Resets:     repositories.PasswordResetRepository{DB: a.DB},
		JWTSecret:  []byte(a.Env.JWTSecret),
		BcryptCost: a.Env.BcryptCost,
		RequestID:  middleware.GetRequestID(c),
	}
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func queryInt64(c *gin.Context, key string) int64 {
	if v := c.Query(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func pagination(c *gin.Context) *domain.Pagination {
	p := &domain.Pagination{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}
	p.Normalize()
	return p
}

func requestContext(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.GetRequestContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required", nil)
	}
	return rc, ok
}

// bookingView decorates a booking with its display amount.
func bookingView(b any, totalCents int64) gin.H {
	return gin.H{
		"booking":      b,
		"total_amount": utils.FormatMoney(totalCents),
	}
}
