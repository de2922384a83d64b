package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/middleware"
	"github.com/dalfonso89/fx-summary-service/internal/models"
	"github.com/dalfonso89/fx-summary-service/internal/ratelimit"
	"github.com/dalfonso89/fx-summary-service/internal/service"
)

const version = "1.0.0"

// HandlerConfig bundles the collaborators the handlers need.
type HandlerConfig struct {
	Logger         *logger.Logger
	SummaryService *service.SummaryService
	RateLimiter    *ratelimit.Limiter
}

// Handlers contains all HTTP handlers
type Handlers struct {
	logger         *logger.Logger
	summaryService *service.SummaryService
	rateLimiter    *ratelimit.Limiter
	startTime      time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(handlerConfig HandlerConfig) *Handlers {
	return &Handlers{
		logger:         handlerConfig.Logger,
		summaryService: handlerConfig.SummaryService,
		rateLimiter:    handlerConfig.RateLimiter,
		startTime:      time.Now(),
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())

	if handlers.rateLimiter != nil {
		router.Use(handlers.rateLimiter.Middleware())
	}

	router.GET("/health", handlers.HealthCheck)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/summary", handlers.GetSummary)
	}

	return router
}

// HealthCheck handles health check requests
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	context.JSON(http.StatusOK, models.HealthCheck{
		Status:    "ok",
		Version:   version,
		Uptime:    time.Since(handlers.startTime).String(),
		Timestamp: time.Now().Unix(),
	})
}

// GetSummary returns the rate summary for a date range. Dates default to
// the last 7 calendar days and breakdown defaults to "day".
func (handlers *Handlers) GetSummary(context *gin.Context) {
	if handlers.summaryService == nil {
		handlers.writeErrorResponse(context, http.StatusServiceUnavailable, "summary service unavailable", "not configured")
		return
	}

	defaultEnd := time.Now()
	defaultStart := defaultEnd.AddDate(0, 0, -7)

	startDate := context.DefaultQuery("start_date", defaultStart.Format("2006-01-02"))
	endDate := context.DefaultQuery("end_date", defaultEnd.Format("2006-01-02"))

	breakdown, err := models.ParseBreakdown(context.DefaultQuery("breakdown", string(models.BreakdownDay)))
	if err != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid breakdown", err.Error())
		return
	}

	summary, err := handlers.summaryService.GetSummary(context.Request.Context(), startDate, endDate, breakdown)
	if err != nil {
		handlers.writeErrorResponse(context, http.StatusBadGateway, "failed to build summary", err.Error())
		return
	}

	context.JSON(http.StatusOK, summary)
}

// writeErrorResponse writes a standardized error response
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage, detail string) {
	handlers.logger.Warnf("%s: %s", errorMessage, detail)
	context.JSON(statusCode, models.ErrorResponse{
		Error:   errorMessage,
		Message: detail,
		Code:    statusCode,
	})
}
