package models

// TimeSlot is one bookable time at a service point on a given date
type TimeSlot struct {
	SlotID int    `json:"slotId"`
	Time   string `json:"time"`
}

// SlotStatus tells why a slot list looks the way it does.
// Empty and FetchFailed render the same message but stay distinct for metrics and tests.
type SlotStatus string

const (
	SlotStatusIdle        SlotStatus = "idle"
	SlotStatusSkipped     SlotStatus = "skipped"
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusEmpty       SlotStatus = "empty"
	SlotStatusFetchFailed SlotStatus = "fetch_failed"
	SlotStatusSuperseded  SlotStatus = "superseded"
)

// SlotKey identifies one resolution input
type SlotKey struct {
	City string `json:"city"`
	Date string `json:"date"`
}

// SlotResult is the outcome of resolving one (city, date) pair
type SlotResult struct {
	Key    SlotKey    `json:"key"`
	Seq    uint64     `json:"seq"`
	Status SlotStatus `json:"status"`
	Slots  []TimeSlot `json:"slots"`
}

// HasTime reports whether t is one of the resolved slot times
func (r SlotResult) HasTime(t string) bool {
	for _, s := range r.Slots {
		if s.Time == t {
			return true
		}
	}
	return false
}
