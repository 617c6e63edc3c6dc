package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"go.uber.org/zap"
)

// ReportService builds the administrative booking reports
type ReportService struct {
	history BookingHistory
	logger  *logging.SafeLogger
}

// NewReportService creates a report service over history
func NewReportService(history BookingHistory, logger *logging.SafeLogger) *ReportService {
	return &ReportService{history: history, logger: logger}
}

// ReportWindow returns the [start, end) dates covered by a report
func ReportWindow(period models.ReportPeriod, start string) (string, string, error) {
	if !period.Valid() {
		return "", "", models.ErrInvalidReportPeriod
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return "", "", models.ErrInvalidDate
	}

	var to time.Time
	switch period {
	case models.ReportDaily:
		to = from.AddDate(0, 0, 1)
	case models.ReportWeekly:
		to = from.AddDate(0, 0, 7)
	case models.ReportMonthly:
		to = from.AddDate(0, 1, 0)
	}
	return from.Format(dateLayout), to.Format(dateLayout), nil
}

// Build aggregates the bookings of one period starting at start
func (s *ReportService) Build(ctx context.Context, period models.ReportPeriod, start string) (*models.Report, error) {
	from, to, err := ReportWindow(period, start)
	if err != nil {
		return nil, err
	}

	records, err := s.history.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for report: %w", err)
	}

	report := BuildReport(period, from, to, records)
	s.logger.Info("report built",
		zap.String("period", string(period)),
		zap.String("start", from),
		zap.Int("total", report.Total))
	return report, nil
}

// BuildReport aggregates records that already fall inside [from, to)
func BuildReport(period models.ReportPeriod, from, to string, records []models.BookingRecord) *models.Report {
	bookings := make([]models.BookingRecord, len(records))
	copy(bookings, records)
	sortRecords(bookings)

	report := &models.Report{
		Period:    period,
		Start:     from,
		End:       to,
		Total:     len(bookings),
		ByStatus:  map[models.BookingStatus]int{},
		ByService: map[string]int{},
		Bookings:  bookings,
	}
	for _, b := range bookings {
		report.ByStatus[b.Status]++
		report.ByService[b.Service]++
	}
	return report
}
