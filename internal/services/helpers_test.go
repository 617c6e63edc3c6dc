package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
)

var bahia = mustLocation("America/Bahia")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

// fakeClock is a settable Clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fetchFunc adapts a function to SlotFetcher
type fetchFunc func(ctx context.Context, date string, servicePointID int) ([]models.TimeSlot, error)

func (f fetchFunc) AvailableSlots(ctx context.Context, date string, servicePointID int) ([]models.TimeSlot, error) {
	return f(ctx, date, servicePointID)
}

func testIdentity() models.CitizenIdentity {
	return models.CitizenIdentity{
		FullName: "Maria da Silva",
		CPF:      "529.982.247-25",
		Email:    "maria@example.com",
		Phone:    "71987654321",
	}
}

// schedulingServer is a fake scheduling service
type schedulingServer struct {
	*httptest.Server

	slotCalls   atomic.Int32
	postCalls   atomic.Int32
	lookupCalls atomic.Int32

	mu       sync.Mutex
	slots    []models.TimeSlot
	posted   []models.BookingRequest
	onPost   func(w http.ResponseWriter, r *http.Request)
	onLookup func(w http.ResponseWriter, r *http.Request)
}

func newSchedulingServer(t *testing.T) *schedulingServer {
	t.Helper()

	s := &schedulingServer{
		slots: []models.TimeSlot{{SlotID: 11, Time: "09:00"}, {SlotID: 12, Time: "10:30"}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/available-slots", func(w http.ResponseWriter, r *http.Request) {
		s.slotCalls.Add(1)
		s.mu.Lock()
		slots := s.slots
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(slots)
	})
	mux.HandleFunc("/api/appointments/by-date", func(w http.ResponseWriter, r *http.Request) {
		s.postCalls.Add(1)
		var req models.BookingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.posted = append(s.posted, req)
		onPost := s.onPost
		s.mu.Unlock()
		if onPost != nil {
			onPost(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})
	mux.HandleFunc("/api/appointments/consultar", func(w http.ResponseWriter, r *http.Request) {
		s.lookupCalls.Add(1)
		s.mu.Lock()
		onLookup := s.onLookup
		s.mu.Unlock()
		if onLookup != nil {
			onLookup(w, r)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *schedulingServer) setOnPost(fn func(w http.ResponseWriter, r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPost = fn
}

func (s *schedulingServer) setOnLookup(fn func(w http.ResponseWriter, r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLookup = fn
}

func (s *schedulingServer) lastPosted() models.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posted[len(s.posted)-1]
}

func (s *schedulingServer) client() *SchedulingClient {
	return NewSchedulingClient(s.URL, s.Server.Client(), logging.Logger)
}
