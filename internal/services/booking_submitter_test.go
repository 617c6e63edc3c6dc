package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posterFunc func(ctx context.Context, booking models.BookingRequest) (int, []byte, error)

func (f posterFunc) PostAppointment(ctx context.Context, booking models.BookingRequest) (int, []byte, error) {
	return f(ctx, booking)
}

func testBookingRequest() models.BookingRequest {
	return models.BookingRequest{
		CitizenName:      "Maria da Silva",
		CitizenCPF:       "529.982.247-25",
		CitizenEmail:     "maria@example.com",
		CitizenTelePhone: "71987654321",
		CitizenCEP:       "40010-000",
		CitizenCity:      "Salvador - BA",
		DesiredDateTime:  models.DesiredDateTime("2025-01-15", "09:00"),
		ServicePointID:   1,
	}
}

func TestBookingSubmitter_Classification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		err        error
		wantKind   models.OutcomeKind
		wantReason string
	}{
		{"created", http.StatusCreated, `{"id":1}`, nil, models.OutcomeConfirmed, ""},
		{"ok with empty body", http.StatusOK, ``, nil, models.OutcomeConfirmed, ""},
		{"conflict with message", http.StatusConflict, `{"message":"Horário indisponível"}`, nil, models.OutcomeRejected, "Horário indisponível"},
		{"bad request without message", http.StatusBadRequest, `{"error":"x"}`, nil, models.OutcomeRejected, ReasonUnknownRejection},
		{"empty message", http.StatusBadRequest, `{"message":""}`, nil, models.OutcomeRejected, ReasonUnknownRejection},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, nil, models.OutcomeTransportError, ReasonTransport},
		{"empty error body", http.StatusBadGateway, ``, nil, models.OutcomeTransportError, ReasonTransport},
		{"network failure", 0, ``, errors.New("dial tcp: connection refused"), models.OutcomeTransportError, ReasonTransport},
		{"timeout", 0, ``, context.DeadlineExceeded, models.OutcomeTransportError, ReasonTimeout},
		{"created with unreadable body", http.StatusCreated, ``, io.ErrUnexpectedEOF, models.OutcomeConfirmed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			submitter := NewBookingSubmitter(posterFunc(func(context.Context, models.BookingRequest) (int, []byte, error) {
				calls++
				return tt.status, []byte(tt.body), tt.err
			}), time.Second, logging.Logger)

			outcome := submitter.Submit(context.Background(), testBookingRequest())

			assert.Equal(t, 1, calls, "exactly one attempt")
			assert.Equal(t, tt.wantKind, outcome.Kind)
			assert.Equal(t, tt.wantReason, outcome.Reason)
			if tt.wantKind == models.OutcomeConfirmed {
				require.NotNil(t, outcome.Request)
				assert.Equal(t, "52998224725", outcome.Request.CitizenCPF)
			} else {
				assert.Nil(t, outcome.Request)
			}
		})
	}
}

func TestBookingSubmitter_NormalizesPayload(t *testing.T) {
	server := newSchedulingServer(t)
	submitter := NewBookingSubmitter(server.client(), time.Second, logging.Logger)

	outcome := submitter.Submit(context.Background(), testBookingRequest())
	require.Equal(t, models.OutcomeConfirmed, outcome.Kind)

	posted := server.lastPosted()
	assert.Equal(t, "52998224725", posted.CitizenCPF)
	assert.Equal(t, "40010000", posted.CitizenCEP)
	assert.Equal(t, "2025-01-15T09:00:00Z", posted.DesiredDateTime)
	assert.Equal(t, 1, posted.ServicePointID)
}

func TestBookingSubmitter_Timeout(t *testing.T) {
	server := newSchedulingServer(t)
	release := make(chan struct{})
	defer close(release)
	server.setOnPost(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	submitter := NewBookingSubmitter(server.client(), 50*time.Millisecond, logging.Logger)

	start := time.Now()
	outcome := submitter.Submit(context.Background(), testBookingRequest())

	assert.Equal(t, models.OutcomeTransportError, outcome.Kind)
	assert.Equal(t, ReasonTimeout, outcome.Reason)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(1), server.postCalls.Load())
}
