package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field feedback
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Errors []models.FieldError `json:"errors"`
}

// HealthResponse reports the state of the service dependencies
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// WorkflowResponse wraps a workflow snapshot with non-blocking field feedback
type WorkflowResponse struct {
	Workflow models.WorkflowView `json:"workflow"`
	Errors   []models.FieldError `json:"errors,omitempty"`
}

// errorStatus maps domain errors to an HTTP status and a message for the page
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrWorkflowNotFound):
		return http.StatusNotFound, "Sessão de agendamento não encontrada"
	case errors.Is(err, models.ErrBookingNotFound):
		return http.StatusNotFound, "Nenhum agendamento encontrado para este CPF"
	case errors.Is(err, models.ErrInvalidCPF):
		return http.StatusBadRequest, "CPF inválido"
	case errors.Is(err, models.ErrInvalidDate):
		return http.StatusBadRequest, "Data inválida"
	case errors.Is(err, models.ErrDateInPast):
		return http.StatusBadRequest, "A data não pode ser anterior a hoje"
	case errors.Is(err, models.ErrInvalidReportPeriod):
		return http.StatusBadRequest, "Período inválido. Use diario, semanal ou mensal"
	case errors.Is(err, models.ErrUnknownCity):
		return http.StatusUnprocessableEntity, "Cidade não atendida"
	case errors.Is(err, models.ErrSlotUnavailable):
		return http.StatusUnprocessableEntity, "Horário indisponível para a data selecionada"
	case errors.Is(err, models.ErrIdentityIncomplete):
		return http.StatusConflict, "Preencha nome, CPF, email e telefone"
	case errors.Is(err, models.ErrScheduleLocked):
		return http.StatusConflict, "Informe um CEP de cidade atendida antes de escolher data e horário"
	case errors.Is(err, models.ErrConsentRequired):
		return http.StatusConflict, "É necessário aceitar os termos"
	case errors.Is(err, models.ErrSubmissionInFlight):
		return http.StatusConflict, "Já existe um agendamento sendo enviado"
	case errors.Is(err, models.ErrWorkflowFinished):
		return http.StatusConflict, "Este agendamento já foi finalizado"
	case errors.Is(err, models.ErrNothingToRetry):
		return http.StatusConflict, "Não há envio para tentar novamente"
	case errors.Is(err, models.ErrWorkflowClosed):
		return http.StatusConflict, "Sessão de agendamento encerrada"
	case errors.Is(err, models.ErrLookupUnavailable):
		return http.StatusBadGateway, "Não foi possível consultar o agendamento. Tente novamente."
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "Dados inválidos"
	}
	return http.StatusInternalServerError, "Erro interno do servidor"
}

// writeError answers with the status of the underlying workflow error. Field
// feedback, when the error carries it, goes out as a ValidationErrorResponse.
func writeError(c *gin.Context, logger *logging.SafeLogger, err error) {
	status, message := errorStatus(err)

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, ValidationErrorResponse{Error: message, Errors: verr.Fields})
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Error: message})
}
