package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/config"
	"github.com/conduit-api/internal/service"
)

const (
	// RequestIDHeader is the header carrying the request id
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, checks ...HealthCheck) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	auth := newAuthenticator(cfg.Auth.JWTSecret)
	optional, required := auth.optional(), auth.required()

	// Handlers
	articles := NewArticleHandler(services, log)
	comments := NewCommentHandler(services, log)
	profiles := NewProfileHandler(services, log)
	tags := NewTagHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(log, checks))

	api := router.Group("/api")
	{
		a := api.Group("/articles")
		{
			a.GET("", optional, articles.List)
			a.GET("/feed", required, articles.Feed)
			a.POST("", required, articles.Create)
			a.GET("/:slug", optional, articles.Get)
			a.PUT("/:slug", required, articles.Update)
			a.DELETE("/:slug", required, articles.Delete)
			a.POST("/:slug/favorite", required, articles.Favorite)
			a.DELETE("/:slug/favorite", required, articles.Unfavorite)

			a.GET("/:slug/comments", optional, comments.List)
			a.POST("/:slug/comments", required, comments.Add)
			a.DELETE("/:slug/comments/:id", required, comments.Delete)
		}

		p := api.Group("/profiles")
		{
			p.GET("/:username", optional, profiles.Get)
			p.POST("/:username/follow", required, profiles.Follow)
			p.DELETE("/:username/follow", required, profiles.Unfollow)
		}

		api.GET("/tags", optional, tags.List)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(log zerolog.Logger, checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		for _, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				log.Warn().Err(err).Msg("Health check failed")
				status, code = "unhealthy", http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "conduit-api",
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("request_id", requestID(c)).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware propagates the client's X-Request-ID or assigns a new one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", requestID(c)).
			Msg("Request completed")
	}
}
