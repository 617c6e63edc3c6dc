package models

import "time"

// BookingRequest is the payload of POST /api/appointments/by-date.
// It is built once from validated workflow state and never mutated afterwards.
type BookingRequest struct {
	CitizenName      string `json:"citizenName"`
	CitizenCPF       string `json:"citizenCpf"`
	CitizenEmail     string `json:"citizenEmail"`
	CitizenTelePhone string `json:"citizenTelePhone"`
	CitizenCEP       string `json:"citizenCep"`
	CitizenCity      string `json:"citizenCity"`
	DesiredDateTime  string `json:"desiredDateTime"`
	ServicePointID   int    `json:"servicePointId"`
}

// DesiredDateTime combines a calendar date and an HH:MM time as the API expects
func DesiredDateTime(date, hhmm string) string {
	return date + "T" + hhmm + ":00Z"
}

// OutcomeKind tags a BookingOutcome
type OutcomeKind string

const (
	OutcomeConfirmed      OutcomeKind = "confirmed"
	OutcomeRejected       OutcomeKind = "rejected"
	OutcomeTransportError OutcomeKind = "transport_error"
)

// BookingOutcome is the classified result of one submission
type BookingOutcome struct {
	Kind       OutcomeKind     `json:"kind"`
	Request    *BookingRequest `json:"request,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}

// Confirmed builds a successful outcome
func Confirmed(req BookingRequest) BookingOutcome {
	return BookingOutcome{Kind: OutcomeConfirmed, Request: &req}
}

// Rejected builds an outcome for a request the scheduling service declined
func Rejected(reason string, statusCode int) BookingOutcome {
	return BookingOutcome{Kind: OutcomeRejected, Reason: reason, StatusCode: statusCode}
}

// TransportFailure builds an outcome for network or decoding failures
func TransportFailure(reason string) BookingOutcome {
	return BookingOutcome{Kind: OutcomeTransportError, Reason: reason}
}

// BookingStatus is the lifecycle status of a stored appointment
type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "agendado"
	BookingStatusConfirmed BookingStatus = "confirmado"
	BookingStatusCancelled BookingStatus = "cancelado"
	BookingStatusCompleted BookingStatus = "concluido"
)

// BookingRecord is one appointment in the booking history. JSON keys follow the
// scheduling service's lookup contract.
type BookingRecord struct {
	ID             string        `json:"id" bson:"_id"`
	Name           string        `json:"nome" bson:"name"`
	CPF            string        `json:"cpf,omitempty" bson:"cpf"`
	Phone          string        `json:"telefone" bson:"phone"`
	Email          string        `json:"email" bson:"email"`
	Service        string        `json:"servico" bson:"service"`
	ServicePointID int           `json:"servicePointId,omitempty" bson:"service_point_id"`
	Date           string        `json:"data" bson:"date"`
	Time           string        `json:"horario" bson:"time"`
	Notes          string        `json:"observacoes,omitempty" bson:"notes,omitempty"`
	Status         BookingStatus `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"criadoEm" bson:"created_at"`
}
