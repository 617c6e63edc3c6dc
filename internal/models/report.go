package models

// ReportPeriod is the window length of an administrative report
type ReportPeriod string

const (
	ReportDaily   ReportPeriod = "diario"
	ReportWeekly  ReportPeriod = "semanal"
	ReportMonthly ReportPeriod = "mensal"
)

// Valid reports whether p is a known period
func (p ReportPeriod) Valid() bool {
	switch p {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	}
	return false
}

// Report aggregates the bookings of one [Start, End) window
type Report struct {
	Period    ReportPeriod          `json:"period"`
	Start     string                `json:"start"`
	End       string                `json:"end"`
	Total     int                   `json:"total"`
	ByStatus  map[BookingStatus]int `json:"byStatus"`
	ByService map[string]int        `json:"byService"`
	Bookings  []BookingRecord       `json:"bookings"`
}
