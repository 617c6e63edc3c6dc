package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/middleware"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/services"
	"go.uber.org/zap"
)

// ReportHandlers serves administrative booking reports
type ReportHandlers struct {
	logger   *logging.SafeLogger
	service  *services.ReportService
	location *time.Location
	now      func() time.Time
}

// NewReportHandlers creates a new report handlers instance. A missing start date
// defaults to today in location.
func NewReportHandlers(logger *logging.SafeLogger, service *services.ReportService, location *time.Location) *ReportHandlers {
	if location == nil {
		location = time.UTC
	}
	return &ReportHandlers{
		logger:   logger,
		service:  service,
		location: location,
		now:      time.Now,
	}
}

// GetReport godoc
// @Summary Relatório de agendamentos
// @Description Agrega os agendamentos do período (diario, semanal ou mensal) iniciado em start (apenas administradores)
// @Tags admin
// @Produce json
// @Param period query string false "Período" Enums(diario, semanal, mensal) default(diario)
// @Param start query string false "Data inicial (AAAA-MM-DD), padrão hoje"
// @Security BearerAuth
// @Success 200 {object} models.Report
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 403 {object} ErrorResponse "Acesso negado - somente administradores"
// @Failure 500 {object} ErrorResponse
// @Router /admin/reports [get]
func (h *ReportHandlers) GetReport(c *gin.Context) {
	period := models.ReportPeriod(c.DefaultQuery("period", string(models.ReportDaily)))
	start := c.Query("start")
	if start == "" {
		start = h.now().In(h.location).Format("2006-01-02")
	}

	report, err := h.service.Build(c.Request.Context(), period, start)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	user := ""
	if claims, err := middleware.ClaimsFromContext(c); err == nil {
		user = claims.PreferredUsername
	}
	h.logger.Info("report served",
		zap.String("user", user),
		zap.String("period", string(period)),
		zap.Int("total", report.Total))

	c.JSON(http.StatusOK, report)
}
