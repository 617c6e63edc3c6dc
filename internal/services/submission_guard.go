package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"go.uber.org/zap"
)

// SubmissionGuard serializes submissions of the same citizen across workflow sessions
type SubmissionGuard interface {
	// Acquire claims the submission slot for a normalized CPF. It fails with
	// models.ErrSubmissionInFlight when another submission holds it.
	Acquire(ctx context.Context, cpf string) (release func(), err error)
}

// LockStore is the subset of redis commands the guard needs
type LockStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// releaseLockScript deletes KEYS[1] only while it still holds the caller's token.
// A holder whose lock expired must not delete the lock of the next holder.
const releaseLockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisSubmissionGuard holds a SET NX lock per CPF for the length of one submission
type RedisSubmissionGuard struct {
	store  LockStore
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewRedisSubmissionGuard creates a guard. ttl bounds how long a crashed holder blocks the CPF.
func NewRedisSubmissionGuard(store LockStore, ttl time.Duration, logger *logging.SafeLogger) *RedisSubmissionGuard {
	return &RedisSubmissionGuard{store: store, ttl: ttl, logger: logger}
}

func submissionLockKey(cpf string) string {
	return fmt.Sprintf("booking:submit:%s", cpf)
}

// Acquire implements SubmissionGuard. When redis fails the submission proceeds
// under the in-process guard only.
func (g *RedisSubmissionGuard) Acquire(ctx context.Context, cpf string) (func(), error) {
	key := submissionLockKey(cpf)
	token := uuid.NewString()

	ok, err := g.store.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		g.logger.Warn("submission lock unavailable, continuing without it",
			zap.String("cpf", observability.MaskCPF(cpf)),
			zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, models.ErrSubmissionInFlight
	}

	return func() {
		// The lock may outlive the request context, so release with a fresh one
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		released, err := g.store.Eval(releaseCtx, releaseLockScript, []string{key}, token).Int64()
		switch {
		case err != nil:
			g.logger.Warn("failed to release submission lock",
				zap.String("cpf", observability.MaskCPF(cpf)),
				zap.Error(err))
		case released == 0:
			g.logger.Warn("submission lock expired before release",
				zap.String("cpf", observability.MaskCPF(cpf)),
				zap.Duration("ttl", g.ttl))
		}
	}, nil
}

// noopGuard is used when no redis is configured
type noopGuard struct{}

func (noopGuard) Acquire(context.Context, string) (func(), error) { return func() {}, nil }
