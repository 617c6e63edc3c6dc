package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/utils"
	"go.uber.org/zap"
)

const (
	availableSlotsPath = "/api/available-slots"
	appointmentsPath   = "/api/appointments/by-date"
	lookupPath         = "/api/appointments/consultar"

	// maxResponseBody caps how much of a scheduling service response is read
	maxResponseBody = 1 << 20
)

// StatusError is returned when the scheduling service answers with an unexpected status
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Operation, e.StatusCode)
}

// SchedulingClient talks to the external scheduling service
type SchedulingClient struct {
	baseURL string
	client  *http.Client
	logger  *logging.SafeLogger
}

// NewSchedulingClient creates a client for the scheduling service at baseURL
func NewSchedulingClient(baseURL string, client *http.Client, logger *logging.SafeLogger) *SchedulingClient {
	return &SchedulingClient{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// AvailableSlots fetches the bookable slots of one service point on one date.
// Any status other than 200 is returned as a *StatusError.
func (c *SchedulingClient) AvailableSlots(ctx context.Context, date string, servicePointID int) ([]models.TimeSlot, error) {
	ctx, span := utils.TraceExternalService(ctx, "scheduling", "available_slots")
	defer span.End()

	q := url.Values{}
	q.Set("date", date)
	q.Set("servicePointId", strconv.Itoa(servicePointID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+availableSlotsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create slots request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to fetch available slots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		err := &StatusError{Operation: "available slots", StatusCode: resp.StatusCode}
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"http.status_code": resp.StatusCode})
		return nil, err
	}

	var slots []models.TimeSlot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&slots); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to decode available slots: %w", err)
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}

	c.logger.Debug("available slots fetched",
		zap.String("date", date),
		zap.Int("service_point_id", servicePointID),
		zap.Int("count", len(slots)))

	return slots, nil
}

// PostAppointment sends one booking request and hands back the raw status and body.
// An error means the exchange itself failed; classifying the answer is up to the caller.
func (c *SchedulingClient) PostAppointment(ctx context.Context, booking models.BookingRequest) (int, []byte, error) {
	ctx, span := utils.TraceExternalService(ctx, "scheduling", "create_appointment")
	defer span.End()

	payload, err := json.Marshal(booking)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+appointmentsPath, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return 0, nil, fmt.Errorf("failed to post booking: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp.StatusCode, nil, fmt.Errorf("failed to read booking response: %w", err)
		}
		// The service already accepted the booking; a broken body does not undo that
		c.logger.Warn("booking accepted but response body unreadable",
			zap.String("cpf", observability.MaskCPF(booking.CitizenCPF)),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return resp.StatusCode, nil, nil
	}

	c.logger.Debug("booking posted",
		zap.String("cpf", observability.MaskCPF(booking.CitizenCPF)),
		zap.Int("service_point_id", booking.ServicePointID),
		zap.Int("status", resp.StatusCode))

	return resp.StatusCode, body, nil
}

type lookupRequest struct {
	CPF string `json:"cpf"`
}

type lookupResponse struct {
	Agendamento *models.BookingRecord `json:"agendamento"`
}

// LookupAppointment asks the scheduling service for the booking of a normalized CPF.
// A nil record with a nil error means the service knows no booking for it.
func (c *SchedulingClient) LookupAppointment(ctx context.Context, cpf string) (*models.BookingRecord, error) {
	ctx, span := utils.TraceExternalService(ctx, "scheduling", "lookup_appointment")
	defer span.End()

	payload, err := json.Marshal(lookupRequest{CPF: cpf})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+lookupPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to look up appointment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{Operation: "lookup", StatusCode: resp.StatusCode}
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"http.status_code": resp.StatusCode})
		return nil, err
	}

	var out lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	return out.Agendamento, nil
}
