package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/services"
	"github.com/sindauto/agendamento/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LocationRequest carries the result of the CEP city detection
type LocationRequest struct {
	CEP    string `json:"cep" example:"40020-000"`
	City   string `json:"city" example:"Salvador - BA"`
	Status string `json:"status" example:"resolved" enums:"pending,resolved,error,unsupported"`
}

// DateRequest picks the appointment date
type DateRequest struct {
	Date string `json:"date" binding:"required" example:"2025-01-15"`
}

// TimeRequest picks one of the available slot times
type TimeRequest struct {
	Time string `json:"time" binding:"required" example:"09:00"`
}

// ConsentRequest records the terms acceptance
type ConsentRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// BookingHandlers drives booking workflow sessions
type BookingHandlers struct {
	logger   *logging.SafeLogger
	registry *services.WorkflowRegistry
}

// NewBookingHandlers creates a new booking handlers instance
func NewBookingHandlers(logger *logging.SafeLogger, registry *services.WorkflowRegistry) *BookingHandlers {
	return &BookingHandlers{
		logger:   logger,
		registry: registry,
	}
}

func (h *BookingHandlers) workflow(c *gin.Context) (*services.BookingWorkflow, bool) {
	w, err := h.registry.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return nil, false
	}
	return w, true
}

func (h *BookingHandlers) respond(c *gin.Context, status int, w *services.BookingWorkflow, feedback *utils.ValidationResult) {
	resp := WorkflowResponse{Workflow: w.View()}
	if feedback != nil && !feedback.IsValid {
		resp.Errors = feedback.Errors
	}
	c.JSON(status, resp)
}

// CreateWorkflow godoc
// @Summary Iniciar agendamento
// @Description Cria uma sessão de agendamento no estado collecting_identity
// @Tags booking
// @Produce json
// @Success 201 {object} WorkflowResponse
// @Router /bookings/workflows [post]
func (h *BookingHandlers) CreateWorkflow(c *gin.Context) {
	w := h.registry.Create()
	h.respond(c, http.StatusCreated, w, nil)
}

// GetWorkflow godoc
// @Summary Obter agendamento em andamento
// @Description Retorna o estado atual da sessão de agendamento
// @Tags booking
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} WorkflowResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings/workflows/{id} [get]
func (h *BookingHandlers) GetWorkflow(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, w, nil)
}

// UpdateIdentity godoc
// @Summary Informar dados pessoais
// @Description Registra nome, CPF, email e telefone. Campos inválidos são devolvidos em "errors" sem bloquear a sessão.
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param data body models.CitizenIdentity true "Dados pessoais"
// @Success 200 {object} WorkflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bookings/workflows/{id}/identity [put]
func (h *BookingHandlers) UpdateIdentity(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var identity models.CitizenIdentity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	feedback, err := w.SetIdentity(identity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusOK, w, feedback)
}

// UpdateLocation godoc
// @Summary Informar cidade
// @Description Registra o CEP e a cidade detectada. Uma cidade sem posto de atendimento responde 422 e mantém data e horário bloqueados.
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param data body LocationRequest true "CEP e cidade"
// @Success 200 {object} WorkflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ValidationErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /bookings/workflows/{id}/location [put]
func (h *BookingHandlers) UpdateLocation(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	if err := w.SetLocation(c.Request.Context(), req.CEP, req.City, req.Status); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusOK, w, nil)
}

// UpdateDate godoc
// @Summary Escolher data
// @Description Registra a data desejada e consulta os horários disponíveis no posto da cidade
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param data body DateRequest true "Data (AAAA-MM-DD)"
// @Success 200 {object} WorkflowResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bookings/workflows/{id}/date [put]
func (h *BookingHandlers) UpdateDate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateDate")
	defer span.End()

	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	result, err := w.SetDate(ctx, req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	span.SetAttributes(
		attribute.String("slot.status", string(result.Status)),
		attribute.Int("slot.count", len(result.Slots)),
	)
	h.respond(c, http.StatusOK, w, nil)
}

// UpdateTime godoc
// @Summary Escolher horário
// @Description Registra um dos horários disponíveis para a data escolhida
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param data body TimeRequest true "Horário (HH:MM)"
// @Success 200 {object} WorkflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /bookings/workflows/{id}/time [put]
func (h *BookingHandlers) UpdateTime(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req TimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	if err := w.SelectTime(req.Time); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusOK, w, nil)
}

// UpdateConsent godoc
// @Summary Aceitar termos
// @Description Registra o aceite (ou a recusa) dos termos de uso
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param data body ConsentRequest true "Aceite"
// @Success 200 {object} WorkflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bookings/workflows/{id}/consent [put]
func (h *BookingHandlers) UpdateConsent(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	if err := w.SetConsent(*req.Accepted); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusOK, w, nil)
}

// SubmitWorkflow godoc
// @Summary Enviar agendamento
// @Description Envia o agendamento ao serviço de agendamento. O resultado (confirmado, recusado ou falha de comunicação) vem em workflow.outcome.
// @Tags booking
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} WorkflowResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ValidationErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /bookings/workflows/{id}/submit [post]
func (h *BookingHandlers) SubmitWorkflow(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitWorkflow")
	defer span.End()

	w, ok := h.workflow(c)
	if !ok {
		return
	}

	outcome, err := w.Submit(ctx)
	if err != nil {
		if errors.Is(err, models.ErrWorkflowClosed) && outcome.Kind != "" {
			h.logger.Info("submission finished after the session was closed",
				zap.String("workflow_id", w.ID()),
				zap.String("outcome", string(outcome.Kind)))
		}
		writeError(c, h.logger, err)
		return
	}

	span.SetAttributes(attribute.String("booking.outcome", string(outcome.Kind)))
	h.respond(c, http.StatusOK, w, nil)
}

// RetryWorkflow godoc
// @Summary Tentar novamente
// @Description Sai da tela de recusa ou de falha e volta ao formulário com os dados preservados
// @Tags booking
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} WorkflowResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bookings/workflows/{id}/retry [post]
func (h *BookingHandlers) RetryWorkflow(c *gin.Context) {
	w, ok := h.workflow(c)
	if !ok {
		return
	}

	if err := w.Retry(c.Request.Context()); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusOK, w, nil)
}

// ResetWorkflow godoc
// @Summary Novo agendamento
// @Description Encerra a sessão e inicia outra vazia, com novo ID
// @Tags booking
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 201 {object} WorkflowResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings/workflows/{id}/reset [post]
func (h *BookingHandlers) ResetWorkflow(c *gin.Context) {
	w, err := h.registry.Reset(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respond(c, http.StatusCreated, w, nil)
}

// DeleteWorkflow godoc
// @Summary Abandonar agendamento
// @Description Encerra a sessão. Respostas ainda pendentes são descartadas.
// @Tags booking
// @Param id path string true "ID da sessão"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /bookings/workflows/{id} [delete]
func (h *BookingHandlers) DeleteWorkflow(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
