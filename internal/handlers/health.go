package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/config"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica o estado do serviço e de suas dependências. MongoDB e Redis ausentes são reportados como "disabled".
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "health_check"),
		attribute.String("service", "health"),
	)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  map[string]string{"mongodb": "disabled", "redis": "disabled"},
	}

	if config.MongoDB != nil {
		_, mongoSpan := utils.TraceExternalService(ctx, "mongodb", "ping")
		if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
			utils.RecordErrorInSpan(mongoSpan, err, map[string]interface{}{"service.name": "mongodb"})
			health.Status = "unhealthy"
			health.Services["mongodb"] = "unhealthy"
		} else {
			health.Services["mongodb"] = "healthy"
		}
		mongoSpan.End()
	}

	// Redis only backs the guard and the lookup cache, so losing it degrades the service
	if config.Redis != nil {
		_, redisSpan := utils.TraceExternalService(ctx, "redis", "ping")
		if err := config.Redis.Ping(ctx).Err(); err != nil {
			utils.RecordErrorInSpan(redisSpan, err, map[string]interface{}{"service.name": "redis"})
			if health.Status == "healthy" {
				health.Status = "degraded"
			}
			health.Services["redis"] = "unhealthy"
		} else {
			health.Services["redis"] = "healthy"
		}
		redisSpan.End()
	}

	if health.Status == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, health)
	} else {
		c.JSON(http.StatusOK, health)
	}

	observability.Logger().Debug("HealthCheck completed",
		zap.String("status", health.Status),
		zap.Duration("total_duration", time.Since(startTime)))
}

// ListServicePoints godoc
// @Summary Listar postos de atendimento
// @Description Lista as cidades atendidas e o identificador do posto de cada uma, ordenados por identificador
// @Tags booking
// @Produce json
// @Success 200 {array} models.ServicePoint
// @Router /service-points [get]
func ListServicePoints(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServicePoints())
}
