package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/services"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logging.InitLogger()
	gin.SetMode(gin.TestMode)
}

var bahia = func() *time.Location {
	loc, err := time.LoadLocation("America/Bahia")
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}()

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, bahia)

// fakeScheduling is a fake scheduling service answering the three endpoints
type fakeScheduling struct {
	*httptest.Server

	postCalls   atomic.Int32
	lookupCalls atomic.Int32

	mu         sync.Mutex
	postStatus int
	postBody   string
	lookupBody string
}

func newFakeScheduling(t *testing.T) *fakeScheduling {
	t.Helper()
	f := &fakeScheduling{postStatus: http.StatusCreated, postBody: `{"id":"abc"}`, lookupBody: `{}`}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/available-slots", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slotId":11,"time":"09:00"},{"slotId":12,"time":"10:30"}]`))
	})
	mux.HandleFunc("/api/appointments/by-date", func(w http.ResponseWriter, r *http.Request) {
		f.postCalls.Add(1)
		f.mu.Lock()
		status, body := f.postStatus, f.postBody
		f.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/api/appointments/consultar", func(w http.ResponseWriter, r *http.Request) {
		f.lookupCalls.Add(1)
		f.mu.Lock()
		body := f.lookupBody
		f.mu.Unlock()
		_, _ = w.Write([]byte(body))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeScheduling) rejectWith(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postStatus, f.postBody = status, body
}

func (f *fakeScheduling) answerLookup(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupBody = body
}

// testApp wires handlers over the fake scheduling service
type testApp struct {
	router     *gin.Engine
	scheduling *fakeScheduling
	history    *services.MemoryBookingHistory
	registry   *services.WorkflowRegistry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	sched := newFakeScheduling(t)
	client := services.NewSchedulingClient(sched.URL, sched.Client(), logging.Logger)
	history := services.NewMemoryBookingHistory()

	registry := services.NewWorkflowRegistry(services.WorkflowDeps{
		Fetcher:     client,
		Submitter:   services.NewBookingSubmitter(client, 5*time.Second, logging.Logger),
		History:     history,
		Clock:       fixedClock{now: testNow},
		Location:    bahia,
		SlotTimeout: 5 * time.Second,
		Logger:      logging.Logger,
	}, time.Hour)
	t.Cleanup(registry.CloseAll)

	lookup := services.NewLookupService(history, nil, client, time.Minute, 5*time.Second, logging.Logger)
	reports := NewReportHandlers(logging.Logger, services.NewReportService(history, logging.Logger), bahia)
	reports.now = func() time.Time { return testNow }

	bookings := NewBookingHandlers(logging.Logger, registry)
	lookups := NewLookupHandlers(logging.Logger, lookup)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/health", HealthCheck)
	v1.GET("/service-points", ListServicePoints)
	v1.POST("/bookings/workflows", bookings.CreateWorkflow)
	v1.GET("/bookings/workflows/:id", bookings.GetWorkflow)
	v1.PUT("/bookings/workflows/:id/identity", bookings.UpdateIdentity)
	v1.PUT("/bookings/workflows/:id/location", bookings.UpdateLocation)
	v1.PUT("/bookings/workflows/:id/date", bookings.UpdateDate)
	v1.PUT("/bookings/workflows/:id/time", bookings.UpdateTime)
	v1.PUT("/bookings/workflows/:id/consent", bookings.UpdateConsent)
	v1.POST("/bookings/workflows/:id/submit", bookings.SubmitWorkflow)
	v1.POST("/bookings/workflows/:id/retry", bookings.RetryWorkflow)
	v1.POST("/bookings/workflows/:id/reset", bookings.ResetWorkflow)
	v1.DELETE("/bookings/workflows/:id", bookings.DeleteWorkflow)
	v1.POST("/bookings/lookup", lookups.LookupBooking)
	v1.GET("/admin/reports", reports.GetReport)

	return &testApp{router: router, scheduling: sched, history: history, registry: registry}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeWorkflow(t *testing.T, w *httptest.ResponseRecorder) WorkflowResponse {
	t.Helper()
	var resp WorkflowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// createReady creates a workflow filled up to AwaitingConsent with consent given
func (a *testApp) createReady(t *testing.T) string {
	t.Helper()
	id := decodeWorkflow(t, a.do(t, http.MethodPost, "/v1/bookings/workflows", nil)).Workflow.ID
	base := "/v1/bookings/workflows/" + id

	steps := []struct {
		path string
		body interface{}
	}{
		{"/identity", models.CitizenIdentity{FullName: "Maria da Silva", CPF: "52998224725", Email: "maria@example.com", Phone: "71987654321"}},
		{"/location", LocationRequest{CEP: "40020000", City: "Salvador - BA"}},
		{"/date", DateRequest{Date: "2025-01-15"}},
		{"/time", TimeRequest{Time: "09:00"}},
		{"/consent", map[string]bool{"accepted": true}},
	}
	for _, s := range steps {
		w := a.do(t, http.MethodPut, base+s.path, s.body)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", s.path, w.Body.String())
	}
	return id
}
