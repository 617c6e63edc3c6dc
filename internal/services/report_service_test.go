package services

import (
	"context"
	"testing"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWindow(t *testing.T) {
	tests := []struct {
		period  models.ReportPeriod
		start   string
		wantEnd string
		wantErr error
	}{
		{models.ReportDaily, "2025-01-31", "2025-02-01", nil},
		{models.ReportWeekly, "2025-12-29", "2026-01-05", nil},
		{models.ReportMonthly, "2025-01-15", "2025-02-15", nil},
		{"anual", "2025-01-01", "", models.ErrInvalidReportPeriod},
		{models.ReportDaily, "31/01/2025", "", models.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(string(tt.period)+"_"+tt.start, func(t *testing.T) {
			start, end, err := ReportWindow(tt.period, tt.start)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestReportService_Build(t *testing.T) {
	history := NewMemoryBookingHistory()
	ctx := context.Background()

	records := []models.BookingRecord{
		{ID: "a", Service: "Salvador - BA", Date: "2025-01-07", Time: "10:00", Status: models.BookingStatusScheduled},
		{ID: "b", Service: "Salvador - BA", Date: "2025-01-06", Time: "15:00", Status: models.BookingStatusConfirmed},
		{ID: "c", Service: "Feira de Santana - BA", Date: "2025-01-06", Time: "08:30", Status: models.BookingStatusScheduled},
		{ID: "d", Service: "Salvador - BA", Date: "2025-01-13", Time: "09:00", Status: models.BookingStatusScheduled},
		{ID: "e", Service: "Salvador - BA", Date: "2025-01-05", Time: "09:00", Status: models.BookingStatusCancelled},
	}
	for _, r := range records {
		require.NoError(t, history.Append(ctx, r))
	}

	svc := NewReportService(history, logging.Logger)
	report, err := svc.Build(ctx, models.ReportWeekly, "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", report.Start)
	assert.Equal(t, "2025-01-13", report.End)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, map[models.BookingStatus]int{
		models.BookingStatusScheduled: 2,
		models.BookingStatusConfirmed: 1,
	}, report.ByStatus)
	assert.Equal(t, map[string]int{"Salvador - BA": 2, "Feira de Santana - BA": 1}, report.ByService)

	var ids []string
	for _, b := range report.Bookings {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestReportService_InvalidPeriod(t *testing.T) {
	svc := NewReportService(NewMemoryBookingHistory(), logging.Logger)
	_, err := svc.Build(context.Background(), "trimestral", "2025-01-01")
	assert.ErrorIs(t, err, models.ErrInvalidReportPeriod)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(models.ReportDaily, "2025-01-01", "2025-01-02", nil)
	assert.Equal(t, 0, report.Total)
	assert.NotNil(t, report.Bookings)
	assert.Empty(t, report.ByStatus)
}
