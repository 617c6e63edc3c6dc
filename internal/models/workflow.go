package models

// WorkflowState is a step of the booking workflow
type WorkflowState string

const (
	StateCollectingIdentity WorkflowState = "collecting_identity"
	StateCollectingLocation WorkflowState = "collecting_location"
	StateCollectingSchedule WorkflowState = "collecting_schedule"
	StateAwaitingConsent    WorkflowState = "awaiting_consent"
	StateSubmitting         WorkflowState = "submitting"
	StateConfirmed          WorkflowState = "confirmed"
	StateRejected           WorkflowState = "rejected"
	StateTransportError     WorkflowState = "transport_error"
)

// Terminal reports whether the state renders a final view
func (s WorkflowState) Terminal() bool {
	switch s {
	case StateConfirmed, StateRejected, StateTransportError:
		return true
	}
	return false
}

// WorkflowView is a snapshot of a workflow for the page that renders it
type WorkflowView struct {
	ID              string          `json:"id"`
	State           WorkflowState   `json:"state"`
	Identity        CitizenIdentity `json:"identity"`
	CEP             string          `json:"cep,omitempty"`
	City            string          `json:"city,omitempty"`
	CityStatus      string          `json:"cityStatus,omitempty"`
	ScheduleEnabled bool            `json:"scheduleEnabled"`
	Date            string          `json:"date,omitempty"`
	Time            string          `json:"time,omitempty"`
	Slots           []TimeSlot      `json:"slots"`
	SlotStatus      SlotStatus      `json:"slotStatus"`
	Consent         bool            `json:"consent"`
	SubmitEnabled   bool            `json:"submitEnabled"`
	Submitting      bool            `json:"submitting"`
	Outcome         *BookingOutcome `json:"outcome,omitempty"`
}

// City detection statuses reported by the CEP lookup collaborator
const (
	CityStatusPending     = "pending"
	CityStatusResolved    = "resolved"
	CityStatusError       = "error"
	CityStatusUnsupported = "unsupported"
)
