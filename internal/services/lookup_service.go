package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/utils"
	"go.uber.org/zap"
)

// Lookup answer sources, also used as metric labels
const (
	LookupSourceHistory = "history"
	LookupSourceCache   = "cache"
	LookupSourceRemote  = "remote"
)

// AppointmentLookup asks the scheduling service for a citizen's booking
type AppointmentLookup interface {
	LookupAppointment(ctx context.Context, cpf string) (*models.BookingRecord, error)
}

// LookupCache is the subset of redis commands used to cache lookup answers
type LookupCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// LookupService finds the latest booking of a citizen by CPF
type LookupService struct {
	history  BookingHistory
	cache    LookupCache
	remote   AppointmentLookup
	cacheTTL time.Duration
	timeout  time.Duration
	logger   *logging.SafeLogger
}

// NewLookupService creates a lookup service. history and cache may be nil.
func NewLookupService(history BookingHistory, cache LookupCache, remote AppointmentLookup, cacheTTL, timeout time.Duration, logger *logging.SafeLogger) *LookupService {
	return &LookupService{
		history:  history,
		cache:    cache,
		remote:   remote,
		cacheTTL: cacheTTL,
		timeout:  timeout,
		logger:   logger,
	}
}

func lookupCacheKey(cpf string) string {
	return fmt.Sprintf("booking:lookup:%s", cpf)
}

// FindByCPF returns the newest booking for cpf and where the answer came from.
// The local history is consulted first, then the cache, then the scheduling service.
func (s *LookupService) FindByCPF(ctx context.Context, cpf string) (*models.BookingRecord, string, error) {
	if !utils.ValidateCPF(cpf) {
		return nil, "", models.ErrInvalidCPF
	}
	cpf = utils.NormalizeCPF(cpf)
	logger := s.logger.With(zap.String("cpf", observability.MaskCPF(cpf)))

	if s.history != nil {
		record, err := s.history.FindLatestByCPF(ctx, cpf)
		switch {
		case err == nil:
			observability.Lookups.WithLabelValues(LookupSourceHistory).Inc()
			return record, LookupSourceHistory, nil
		case !errors.Is(err, models.ErrBookingNotFound):
			logger.Warn("booking history unavailable for lookup", zap.Error(err))
		}
	}

	key := lookupCacheKey(cpf)
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key).Result()
		switch {
		case err == nil:
			var record models.BookingRecord
			if jsonErr := json.Unmarshal([]byte(data), &record); jsonErr == nil {
				observability.Lookups.WithLabelValues(LookupSourceCache).Inc()
				return &record, LookupSourceCache, nil
			}
			logger.Warn("discarding malformed cached lookup")
		case !errors.Is(err, redis.Nil):
			logger.Warn("lookup cache unavailable", zap.Error(err))
		}
	}

	remoteCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		remoteCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	record, err := s.remote.LookupAppointment(remoteCtx, cpf)
	if err != nil {
		observability.Lookups.WithLabelValues("error").Inc()
		logger.Error("appointment lookup failed", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", models.ErrLookupUnavailable, err)
	}
	if record == nil {
		observability.Lookups.WithLabelValues("not_found").Inc()
		return nil, "", models.ErrBookingNotFound
	}

	if s.cache != nil {
		if data, err := json.Marshal(record); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				logger.Warn("failed to cache lookup answer", zap.Error(err))
			}
		}
	}

	observability.Lookups.WithLabelValues(LookupSourceRemote).Inc()
	return record, LookupSourceRemote, nil
}
