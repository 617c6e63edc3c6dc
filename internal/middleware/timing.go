package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// slowRequestThreshold is the latency above which a request is logged as slow.
// Submissions may legitimately take up to the submit timeout.
const slowRequestThreshold = 5 * time.Second

// RequestTiming opens a span around each request and flags slow ones
func RequestTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx, span := otel.Tracer("http").Start(c.Request.Context(), "http.request")
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.user_agent", c.Request.UserAgent()),
			attribute.String("http.request_id", c.GetString(requestIDKey)),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", latency.Milliseconds()),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}

		if latency > slowRequestThreshold {
			observability.Logger().Warn("slow request",
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.Int("status", status),
				zap.Duration("latency", latency),
			)
		}
	}
}
