package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LookupRequest asks for the latest booking of a CPF
type LookupRequest struct {
	CPF string `json:"cpf" binding:"required" example:"529.982.247-25"`
}

// LookupResponse carries the booking found and where it came from
type LookupResponse struct {
	Agendamento *models.BookingRecord `json:"agendamento"`
	Source      string                `json:"source" enums:"history,cache,remote"`
}

// LookupHandlers answers appointment lookups
type LookupHandlers struct {
	logger  *logging.SafeLogger
	service *services.LookupService
}

// NewLookupHandlers creates a new lookup handlers instance
func NewLookupHandlers(logger *logging.SafeLogger, service *services.LookupService) *LookupHandlers {
	return &LookupHandlers{logger: logger, service: service}
}

// LookupBooking godoc
// @Summary Consultar agendamento
// @Description Retorna o agendamento mais recente do CPF informado
// @Tags booking
// @Accept json
// @Produce json
// @Param data body LookupRequest true "CPF"
// @Success 200 {object} LookupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /bookings/lookup [post]
func (h *LookupHandlers) LookupBooking(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "LookupBooking")
	defer span.End()

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	record, source, err := h.service.FindByCPF(ctx, req.CPF)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	span.SetAttributes(attribute.String("lookup.source", source))
	c.JSON(http.StatusOK, LookupResponse{Agendamento: record, Source: source})

	h.logger.Debug("LookupBooking completed",
		zap.String("source", source),
		zap.Duration("total_duration", time.Since(startTime)))
}
