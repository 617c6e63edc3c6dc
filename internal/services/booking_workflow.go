package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/utils"
	"go.uber.org/zap"
)

// Submitter submits a booking request and classifies the answer
type Submitter interface {
	Submit(ctx context.Context, booking models.BookingRequest) models.BookingOutcome
}

// WorkflowDeps are the collaborators shared by every booking workflow
type WorkflowDeps struct {
	Fetcher     SlotFetcher
	Submitter   Submitter
	Guard       SubmissionGuard
	History     BookingHistory
	Clock       Clock
	Location    *time.Location
	SlotTimeout time.Duration
	Logger      *logging.SafeLogger
}

// BookingWorkflow drives one booking attempt from identity collection to a
// terminal outcome. Its mutex is never held across a network call; responses
// that come back after the workflow moved on are dropped.
type BookingWorkflow struct {
	id        string
	resolver  *SlotResolver
	submitter Submitter
	guard     SubmissionGuard
	history   BookingHistory
	clock     Clock
	logger    *logging.SafeLogger

	mu          sync.Mutex
	generation  uint64
	closed      bool
	state       models.WorkflowState
	identity    models.CitizenIdentity
	cep         string
	city        string
	cityStatus  string
	date        string
	time        string
	slots       models.SlotResult
	consent     bool
	submitting  bool
	outcome     *models.BookingOutcome
	retryTarget models.WorkflowState
	touchedAt   time.Time
}

// NewBookingWorkflow creates a workflow in CollectingIdentity
func NewBookingWorkflow(id string, deps WorkflowDeps) *BookingWorkflow {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	guard := deps.Guard
	if guard == nil {
		guard = noopGuard{}
	}
	return &BookingWorkflow{
		id:        id,
		resolver:  NewSlotResolver(deps.Fetcher, clock, deps.Location, deps.SlotTimeout, deps.Logger),
		submitter: deps.Submitter,
		guard:     guard,
		history:   deps.History,
		clock:     clock,
		logger:    deps.Logger.With(zap.String("workflow_id", id)),
		state:     models.StateCollectingIdentity,
		slots:     idleSlots(),
		touchedAt: clock.Now(),
	}
}

func idleSlots() models.SlotResult {
	return models.SlotResult{Status: models.SlotStatusIdle, Slots: []models.TimeSlot{}}
}

// ID returns the workflow identifier
func (w *BookingWorkflow) ID() string { return w.id }

// LastTouched returns when the workflow was last changed
func (w *BookingWorkflow) LastTouched() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touchedAt
}

// checkEditable must be called with w.mu held
func (w *BookingWorkflow) checkEditable() error {
	switch {
	case w.closed:
		return models.ErrWorkflowClosed
	case w.submitting:
		return models.ErrSubmissionInFlight
	case w.state.Terminal():
		return models.ErrWorkflowFinished
	}
	return nil
}

func (w *BookingWorkflow) cityResolved() bool {
	return w.city != "" && w.cityStatus == models.CityStatusResolved
}

// recompute derives the form state from the collected fields. Must be called with w.mu held.
func (w *BookingWorkflow) recompute() {
	w.touchedAt = w.clock.Now()
	if w.submitting || w.state.Terminal() {
		return
	}
	switch {
	case !w.identity.IsComplete():
		w.state = models.StateCollectingIdentity
	case !w.cityResolved():
		w.state = models.StateCollectingLocation
	case w.date == "" || w.time == "" || !w.slots.HasTime(w.time):
		w.state = models.StateCollectingSchedule
	default:
		w.state = models.StateAwaitingConsent
	}
}

// SetIdentity stores the identity fields and returns field feedback. Only missing
// fields hold the workflow back; a malformed CPF is reported here and refused at submit.
func (w *BookingWorkflow) SetIdentity(identity models.CitizenIdentity) (*utils.ValidationResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditable(); err != nil {
		return nil, err
	}

	w.identity = utils.SanitizeIdentity(identity)
	w.identity.CPF = utils.FormatCPF(w.identity.CPF)
	feedback := utils.ValidateIdentity(w.identity)
	w.recompute()

	return feedback, nil
}

// SetLocation records the city detected from the citizen's CEP. A changed city
// drops the chosen time and re-resolves slots when a date is already set.
func (w *BookingWorkflow) SetLocation(ctx context.Context, cep, city, status string) error {
	w.mu.Lock()
	if err := w.checkEditable(); err != nil {
		w.mu.Unlock()
		return err
	}
	if !w.identity.IsComplete() {
		w.mu.Unlock()
		return identityError(w.identity)
	}

	city = strings.TrimSpace(city)
	status = strings.TrimSpace(status)
	if status == "" {
		status = models.CityStatusResolved
		if city == "" {
			status = models.CityStatusPending
		}
	}

	var err error
	if status == models.CityStatusResolved {
		if _, ok := models.ServicePointID(city); !ok {
			status = models.CityStatusUnsupported
			err = models.NewValidationError("cep", "Cidade não atendida").WithCause(models.ErrUnknownCity)
		}
	}

	changed := city != w.city || status != w.cityStatus
	w.cep = utils.FormatCEP(cep)
	w.city = city
	w.cityStatus = status
	if changed {
		w.time = ""
		w.consent = false
		w.slots = idleSlots()
		w.resolver.Reset()
	}
	var req *SlotRequest
	if changed && w.cityResolved() && w.date != "" {
		req = w.resolver.Begin(models.SlotKey{City: w.city, Date: w.date})
	}
	gen := w.generation
	w.recompute()
	w.mu.Unlock()

	if req != nil {
		w.resolveSlots(ctx, req, gen)
	}
	return err
}

// ScheduleEnabled reports whether the date and time inputs accept values
func (w *BookingWorkflow) ScheduleEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scheduleEnabled()
}

func (w *BookingWorkflow) scheduleEnabled() bool {
	return !w.closed && !w.submitting && !w.state.Terminal() && w.identity.IsComplete() && w.cityResolved()
}

// SetDate picks the appointment date and resolves its slots. The call returns
// once the resolution landed or was superseded by a newer one.
func (w *BookingWorkflow) SetDate(ctx context.Context, date string) (models.SlotResult, error) {
	w.mu.Lock()
	if err := w.checkEditable(); err != nil {
		w.mu.Unlock()
		return models.SlotResult{}, err
	}
	if !w.scheduleEnabled() {
		w.mu.Unlock()
		return models.SlotResult{}, models.ErrScheduleLocked
	}
	date = strings.TrimSpace(date)
	if err := w.resolver.CheckDate(date); err != nil {
		w.mu.Unlock()
		return models.SlotResult{}, dateError(err)
	}

	if date != w.date {
		w.time = ""
		w.consent = false
		w.slots = idleSlots()
	}
	w.date = date
	req := w.resolver.Begin(models.SlotKey{City: w.city, Date: w.date})
	gen := w.generation
	w.recompute()
	w.mu.Unlock()

	return w.resolveSlots(ctx, req, gen), nil
}

// resolveSlots runs a request begun under w.mu outside the lock and applies the
// result only if the workflow still asks for the same key.
func (w *BookingWorkflow) resolveSlots(ctx context.Context, req *SlotRequest, gen uint64) models.SlotResult {
	key := req.key
	result := req.Run(ctx)
	if result.Status == models.SlotStatusSuperseded {
		return result
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || gen != w.generation || w.city != key.City || w.date != key.Date {
		result.Status = models.SlotStatusSuperseded
		result.Slots = []models.TimeSlot{}
		return result
	}
	w.slots = result
	if w.time != "" && !result.HasTime(w.time) {
		w.time = ""
	}
	w.recompute()
	return result
}

// SelectTime picks one of the resolved slot times
func (w *BookingWorkflow) SelectTime(t string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditable(); err != nil {
		return err
	}
	if !w.scheduleEnabled() || w.date == "" {
		return models.ErrScheduleLocked
	}
	t = strings.TrimSpace(t)
	if !w.slots.HasTime(t) {
		return slotError()
	}
	w.time = t
	w.recompute()
	return nil
}

// SetConsent records whether the citizen accepted the terms
func (w *BookingWorkflow) SetConsent(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditable(); err != nil {
		return err
	}
	w.consent = accepted
	w.recompute()
	return nil
}

// SubmitEnabled reports whether the submit action is available
func (w *BookingWorkflow) SubmitEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitEnabled()
}

func (w *BookingWorkflow) submitEnabled() bool {
	return !w.closed && !w.submitting && w.state == models.StateAwaitingConsent && w.consent
}

// Submit validates the CPF, then posts the booking once. While a submission is in
// flight every further Submit fails with models.ErrSubmissionInFlight.
func (w *BookingWorkflow) Submit(ctx context.Context) (models.BookingOutcome, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "workflow_submit")
	defer span.End()

	w.mu.Lock()
	if err := w.checkEditable(); err != nil {
		w.mu.Unlock()
		return models.BookingOutcome{}, err
	}
	if err := w.checkSubmittable(); err != nil {
		w.mu.Unlock()
		return models.BookingOutcome{}, err
	}

	if utils.ValidateIdentity(w.identity).HasError("cpf") {
		outcome := models.Rejected(ReasonInvalidCPF, 0)
		w.finish(outcome, models.StateCollectingIdentity)
		w.mu.Unlock()
		observability.BookingSubmissions.WithLabelValues("invalid_cpf").Inc()
		w.logger.Info("submission refused, invalid CPF")
		return outcome, nil
	}

	servicePointID, _ := models.ServicePointID(w.city)
	booking := models.BookingRequest{
		CitizenName:      w.identity.FullName,
		CitizenCPF:       utils.NormalizeCPF(w.identity.CPF),
		CitizenEmail:     w.identity.Email,
		CitizenTelePhone: w.identity.Phone,
		CitizenCEP:       utils.NormalizeCEP(w.cep),
		CitizenCity:      w.city,
		DesiredDateTime:  models.DesiredDateTime(w.date, w.time),
		ServicePointID:   servicePointID,
	}
	date, slotTime := w.date, w.time
	gen := w.generation
	w.submitting = true
	w.state = models.StateSubmitting
	w.touchedAt = w.clock.Now()
	w.mu.Unlock()

	release, err := w.guard.Acquire(ctx, booking.CitizenCPF)
	if err != nil {
		w.mu.Lock()
		w.submitting = false
		w.recompute()
		w.mu.Unlock()
		return models.BookingOutcome{}, err
	}

	// The citizen leaving the page must not abort a POST that may already have booked
	outcome := w.submitter.Submit(context.WithoutCancel(ctx), booking)
	release()

	if outcome.Kind == models.OutcomeConfirmed {
		w.record(ctx, booking, servicePointID, date, slotTime)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if w.closed || gen != w.generation {
		return outcome, models.ErrWorkflowClosed
	}
	w.finish(outcome, models.StateCollectingSchedule)
	return outcome, nil
}

// checkSubmittable must be called with w.mu held
func (w *BookingWorkflow) checkSubmittable() error {
	switch {
	case !w.identity.IsComplete():
		return identityError(w.identity)
	case !w.cityResolved():
		return models.ErrScheduleLocked
	case w.date == "" || w.time == "" || !w.slots.HasTime(w.time):
		return slotError()
	case !w.consent:
		return models.NewValidationError("consent", "É necessário aceitar os termos").WithCause(models.ErrConsentRequired)
	}
	return nil
}

// identityError lists the identity fields that still block the workflow
func identityError(identity models.CitizenIdentity) error {
	var verr *models.ValidationError
	if errors.As(utils.ValidateIdentity(identity).Err(), &verr) {
		return verr.WithCause(models.ErrIdentityIncomplete)
	}
	return models.ErrIdentityIncomplete
}

func dateError(err error) error {
	message := "Data inválida"
	if errors.Is(err, models.ErrDateInPast) {
		message = "A data não pode ser anterior a hoje"
	}
	return models.NewValidationError("date", message).WithCause(err)
}

func slotError() error {
	return models.NewValidationError("time", "Horário indisponível para a data selecionada").WithCause(models.ErrSlotUnavailable)
}

// finish moves to the terminal state of outcome. Must be called with w.mu held.
func (w *BookingWorkflow) finish(outcome models.BookingOutcome, retryTarget models.WorkflowState) {
	switch outcome.Kind {
	case models.OutcomeConfirmed:
		w.state = models.StateConfirmed
	case models.OutcomeRejected:
		w.state = models.StateRejected
	default:
		w.state = models.StateTransportError
	}
	w.outcome = &outcome
	w.retryTarget = retryTarget
	w.touchedAt = w.clock.Now()
}

func (w *BookingWorkflow) record(ctx context.Context, booking models.BookingRequest, servicePointID int, date, slotTime string) {
	if w.history == nil {
		return
	}
	rec := models.BookingRecord{
		ID:             uuid.NewString(),
		Name:           booking.CitizenName,
		CPF:            booking.CitizenCPF,
		Phone:          booking.CitizenTelePhone,
		Email:          booking.CitizenEmail,
		Service:        booking.CitizenCity,
		ServicePointID: servicePointID,
		Date:           date,
		Time:           slotTime,
		Status:         models.BookingStatusScheduled,
		CreatedAt:      w.clock.Now().UTC(),
	}
	if err := w.history.Append(context.WithoutCancel(ctx), rec); err != nil {
		w.logger.Error("failed to record confirmed booking",
			zap.String("cpf", observability.MaskCPF(booking.CitizenCPF)),
			zap.Error(err))
	}
}

// Retry leaves a Rejected or TransportError view. A refused CPF goes back to
// identity collection; a rejection by the scheduling service goes back to the
// schedule with the time and consent cleared and the slots fetched again.
func (w *BookingWorkflow) Retry(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return models.ErrWorkflowClosed
	}
	if w.state != models.StateRejected && w.state != models.StateTransportError {
		w.mu.Unlock()
		return models.ErrNothingToRetry
	}

	rejected := w.state == models.StateRejected
	target := w.retryTarget
	w.outcome = nil
	w.retryTarget = ""
	w.consent = false

	if target == models.StateCollectingIdentity {
		w.state = models.StateCollectingIdentity
		w.touchedAt = w.clock.Now()
		w.mu.Unlock()
		return nil
	}

	w.state = models.StateCollectingSchedule
	if !rejected {
		w.recompute()
		w.mu.Unlock()
		return nil
	}

	w.time = ""
	w.slots = idleSlots()
	var req *SlotRequest
	if w.date != "" {
		req = w.resolver.Begin(models.SlotKey{City: w.city, Date: w.date})
	}
	gen := w.generation
	w.recompute()
	w.mu.Unlock()

	if req != nil {
		w.resolveSlots(ctx, req, gen)
	}
	return nil
}

// Close invalidates the workflow. Responses still in flight are discarded.
func (w *BookingWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.generation++
	w.resolver.Reset()
}

// Closed reports whether Close was called
func (w *BookingWorkflow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// View returns a snapshot for rendering
func (w *BookingWorkflow) View() models.WorkflowView {
	w.mu.Lock()
	defer w.mu.Unlock()

	slots := make([]models.TimeSlot, len(w.slots.Slots))
	copy(slots, w.slots.Slots)

	view := models.WorkflowView{
		ID:              w.id,
		State:           w.state,
		Identity:        w.identity,
		CEP:             w.cep,
		City:            w.city,
		CityStatus:      w.cityStatus,
		ScheduleEnabled: w.scheduleEnabled(),
		Date:            w.date,
		Time:            w.time,
		Slots:           slots,
		SlotStatus:      w.slots.Status,
		Consent:         w.consent,
		SubmitEnabled:   w.submitEnabled(),
		Submitting:      w.submitting,
	}
	if w.outcome != nil {
		o := *w.outcome
		view.Outcome = &o
	}
	return view
}
