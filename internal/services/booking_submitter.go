package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/utils"
	"go.uber.org/zap"
)

// Citizen-facing reasons for outcomes the scheduling service did not explain
const (
	ReasonUnknownRejection = "Erro desconhecido. Tente novamente."
	ReasonTransport        = "Não foi possível contatar o serviço de agendamento. Tente novamente."
	ReasonTimeout          = "O serviço de agendamento não respondeu a tempo. Tente novamente."
	ReasonInvalidCPF       = "CPF inválido"
)

// AppointmentPoster sends a booking request and returns the raw answer
type AppointmentPoster interface {
	PostAppointment(ctx context.Context, booking models.BookingRequest) (int, []byte, error)
}

// BookingSubmitter submits one booking request per call and classifies the answer.
// It never retries: a repeated POST could book the citizen twice.
type BookingSubmitter struct {
	poster  AppointmentPoster
	timeout time.Duration
	logger  *logging.SafeLogger
}

// NewBookingSubmitter creates a submitter. A positive timeout bounds each submission.
func NewBookingSubmitter(poster AppointmentPoster, timeout time.Duration, logger *logging.SafeLogger) *BookingSubmitter {
	return &BookingSubmitter{
		poster:  poster,
		timeout: timeout,
		logger:  logger,
	}
}

type rejectionBody struct {
	Message *string `json:"message"`
}

// Submit posts booking exactly once. The CPF and CEP are normalized before sending;
// the CPF is assumed to be already validated.
func (s *BookingSubmitter) Submit(ctx context.Context, booking models.BookingRequest) models.BookingOutcome {
	ctx, span := utils.TraceBusinessLogic(ctx, "submit_booking")
	defer span.End()

	booking.CitizenCPF = utils.NormalizeCPF(booking.CitizenCPF)
	booking.CitizenCEP = utils.NormalizeCEP(booking.CitizenCEP)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := s.logger.With(
		zap.String("cpf", observability.MaskCPF(booking.CitizenCPF)),
		zap.Int("service_point_id", booking.ServicePointID),
		zap.String("desired_date_time", booking.DesiredDateTime))

	status, body, err := s.poster.PostAppointment(ctx, booking)
	outcome := classify(ctx, booking, status, body, err)

	observability.BookingSubmissions.WithLabelValues(string(outcome.Kind)).Inc()
	switch outcome.Kind {
	case models.OutcomeConfirmed:
		logger.Info("booking confirmed", zap.Int("status", status))
	case models.OutcomeRejected:
		logger.Info("booking rejected", zap.Int("status", status), zap.String("reason", outcome.Reason))
	default:
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"http.status_code": status})
		logger.Warn("booking submission failed", zap.Int("status", status), zap.Error(err))
	}

	return outcome
}

// classify decides on a 2xx status first: once the service accepted the booking,
// a failure while reading its answer must not be reported as a transport error.
func classify(ctx context.Context, booking models.BookingRequest, status int, body []byte, err error) models.BookingOutcome {
	if status >= 200 && status < 300 {
		return models.Confirmed(booking)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.TransportFailure(ReasonTimeout)
		}
		return models.TransportFailure(ReasonTransport)
	}

	var rejection rejectionBody
	if jsonErr := json.Unmarshal(body, &rejection); jsonErr != nil {
		return models.TransportFailure(ReasonTransport)
	}
	if rejection.Message == nil || *rejection.Message == "" {
		return models.Rejected(ReasonUnknownRejection, status)
	}
	return models.Rejected(*rejection.Message, status)
}
