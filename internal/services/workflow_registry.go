package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"go.uber.org/zap"
)

// WorkflowRegistry holds the live booking workflows of this instance
type WorkflowRegistry struct {
	deps   WorkflowDeps
	ttl    time.Duration
	clock  Clock
	logger *logging.SafeLogger

	mu        sync.RWMutex
	workflows map[string]*BookingWorkflow
}

// NewWorkflowRegistry creates a registry. Workflows idle for longer than ttl expire;
// a zero ttl keeps them until deleted.
func NewWorkflowRegistry(deps WorkflowDeps, ttl time.Duration) *WorkflowRegistry {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &WorkflowRegistry{
		deps:      deps,
		ttl:       ttl,
		clock:     clock,
		logger:    deps.Logger,
		workflows: make(map[string]*BookingWorkflow),
	}
}

// Create starts a new workflow with a fresh id
func (r *WorkflowRegistry) Create() *BookingWorkflow {
	w := NewBookingWorkflow(uuid.NewString(), r.deps)

	r.mu.Lock()
	r.workflows[w.ID()] = w
	count := len(r.workflows)
	r.mu.Unlock()

	observability.WorkflowSessions.Set(float64(count))
	r.logger.Debug("workflow created", zap.String("workflow_id", w.ID()))
	return w
}

// Get returns a live workflow. Expired workflows are closed and reported as not found.
func (r *WorkflowRegistry) Get(id string) (*BookingWorkflow, error) {
	r.mu.RLock()
	w, ok := r.workflows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrWorkflowNotFound
	}
	if r.expired(w) {
		r.Delete(id)
		return nil, models.ErrWorkflowNotFound
	}
	return w, nil
}

// Delete closes and forgets a workflow
func (r *WorkflowRegistry) Delete(id string) error {
	r.mu.Lock()
	w, ok := r.workflows[id]
	delete(r.workflows, id)
	count := len(r.workflows)
	r.mu.Unlock()

	if !ok {
		return models.ErrWorkflowNotFound
	}
	w.Close()
	observability.WorkflowSessions.Set(float64(count))
	return nil
}

// Reset closes a workflow and starts a new one in its place
func (r *WorkflowRegistry) Reset(id string) (*BookingWorkflow, error) {
	if err := r.Delete(id); err != nil {
		return nil, err
	}
	return r.Create(), nil
}

// Len returns the number of registered workflows
func (r *WorkflowRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workflows)
}

func (r *WorkflowRegistry) expired(w *BookingWorkflow) bool {
	return r.ttl > 0 && r.clock.Now().Sub(w.LastTouched()) > r.ttl
}

// Sweep closes every expired workflow and returns how many were removed
func (r *WorkflowRegistry) Sweep() int {
	r.mu.RLock()
	var stale []string
	for id, w := range r.workflows {
		if r.expired(w) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if r.Delete(id) == nil {
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("expired workflows removed", zap.Int("count", removed))
	}
	return removed
}

// StartSweeper sweeps on every interval until ctx is done
func (r *WorkflowRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}

// CloseAll closes every workflow, used on shutdown
func (r *WorkflowRegistry) CloseAll() {
	r.mu.Lock()
	workflows := r.workflows
	r.workflows = make(map[string]*BookingWorkflow)
	r.mu.Unlock()

	for _, w := range workflows {
		w.Close()
	}
	observability.WorkflowSessions.Set(0)
}
