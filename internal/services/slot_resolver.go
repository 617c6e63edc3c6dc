package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Clock abstracts the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SlotFetcher loads the slots of one service point on one date
type SlotFetcher interface {
	AvailableSlots(ctx context.Context, date string, servicePointID int) ([]models.TimeSlot, error)
}

// SlotResolver turns a (city, date) pair into bookable slots. Every request
// reserves a sequence number when it begins; only the latest reservation may
// land, and beginning a request cancels the one in flight.
type SlotResolver struct {
	fetcher  SlotFetcher
	clock    Clock
	location *time.Location
	timeout  time.Duration
	logger   *logging.SafeLogger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// SlotRequest is a resolution whose place in the sequence is already fixed
type SlotRequest struct {
	resolver *SlotResolver
	key      models.SlotKey
	seq      uint64
}

// NewSlotResolver creates a resolver. Dates are judged against today in location.
func NewSlotResolver(fetcher SlotFetcher, clock Clock, location *time.Location, timeout time.Duration, logger *logging.SafeLogger) *SlotResolver {
	if clock == nil {
		clock = SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}
	return &SlotResolver{
		fetcher:  fetcher,
		clock:    clock,
		location: location,
		timeout:  timeout,
		logger:   logger,
	}
}

// CheckDate validates a calendar date: ISO formatted and not earlier than today
func (r *SlotResolver) CheckDate(date string) error {
	if date == "" {
		return models.ErrInvalidDate
	}
	d, err := time.ParseInLocation(dateLayout, date, r.location)
	if err != nil {
		return models.ErrInvalidDate
	}
	now := r.clock.Now().In(r.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.location)
	if d.Before(today) {
		return models.ErrDateInPast
	}
	return nil
}

// Begin reserves the next sequence number for key and cancels the request in
// flight. Callers that order requests under their own lock call Begin while
// holding it, so the reservation order matches their order.
func (r *SlotResolver) Begin(key models.SlotKey) *SlotRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	return &SlotRequest{resolver: r, key: key, seq: r.seq}
}

// Run fetches the slots of the request. Incomplete or invalid input is answered
// with a skipped result without touching the network. A request overtaken by a
// newer one, before or after its fetch, comes back superseded.
func (q *SlotRequest) Run(ctx context.Context) models.SlotResult {
	r, key, seq := q.resolver, q.key, q.seq

	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		return r.supersede(key, seq)
	}

	servicePointID, ok := models.ServicePointID(key.City)
	if !ok || r.CheckDate(key.Date) != nil {
		r.mu.Unlock()
		result := models.SlotResult{Key: key, Seq: seq, Status: models.SlotStatusSkipped, Slots: []models.TimeSlot{}}
		observability.SlotResolutions.WithLabelValues(string(result.Status)).Inc()
		return result
	}

	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if r.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, r.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}
	r.cancel = cancel
	r.mu.Unlock()

	slots, err := r.fetcher.AvailableSlots(fetchCtx, key.Date, servicePointID)
	cancel()

	result := models.SlotResult{Key: key, Seq: seq, Slots: slots}
	switch {
	case err != nil:
		result.Status = models.SlotStatusFetchFailed
		result.Slots = []models.TimeSlot{}
	case len(slots) == 0:
		result.Status = models.SlotStatusEmpty
		result.Slots = []models.TimeSlot{}
	default:
		result.Status = models.SlotStatusAvailable
	}

	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		return r.supersede(key, seq)
	}
	r.cancel = nil
	r.mu.Unlock()

	observability.SlotResolutions.WithLabelValues(string(result.Status)).Inc()
	if err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Warn("slot resolution failed",
			zap.String("city", key.City),
			zap.String("date", key.Date),
			zap.Error(err))
	}

	return result
}

func (r *SlotResolver) supersede(key models.SlotKey, seq uint64) models.SlotResult {
	result := models.SlotResult{Key: key, Seq: seq, Status: models.SlotStatusSuperseded, Slots: []models.TimeSlot{}}
	observability.SlotResolutions.WithLabelValues(string(result.Status)).Inc()
	r.logger.Debug("discarding stale slot resolution",
		zap.String("city", key.City),
		zap.String("date", key.Date),
		zap.Uint64("seq", seq))
	return result
}

// Reset cancels any request in flight and supersedes every request already begun
func (r *SlotResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
