package model

import "time"

// Outcome is the persistency classification of a single policy.
type Outcome string

const (
	OutcomePositive Outcome = "positive"
	OutcomeNegative Outcome = "negative"
	OutcomeNeutral  Outcome = "neutral"
)

// NormalizedPolicy is the carrier-agnostic projection of one roster row.
// PolicyID and StatusRaw are always present; ReferenceDate is required for
// time-window bucketing and rows without one are skipped upstream.
type NormalizedPolicy struct {
	PolicyID           string     `json:"policy_id"`
	CarrierName        string     `json:"carrier_name"`
	StatusRaw          string     `json:"status_raw"`
	StatusDetail       string     `json:"status_detail,omitempty"`
	ReferenceDate      time.Time  `json:"reference_date"`
	SecondaryDate      *time.Time `json:"secondary_date,omitempty"`
	WritingAgentNumber string     `json:"writing_agent_number,omitempty"`
	InsuredFirstName   string     `json:"insured_first_name,omitempty"`
	InsuredLastName    string     `json:"insured_last_name,omitempty"`
	Phone              string     `json:"phone,omitempty"`
}

// TimeWindow is a trailing bucketing period relative to now.
type TimeWindow string

const (
	Window3Months TimeWindow = "3"
	Window6Months TimeWindow = "6"
	Window9Months TimeWindow = "9"
	WindowAll     TimeWindow = "All"
)

// Windows lists every window in display order.
var Windows = []TimeWindow{Window3Months, Window6Months, Window9Months, WindowAll}

// Months returns the trailing month count for the window, or -1 for WindowAll.
func (w TimeWindow) Months() int {
	switch w {
	case Window3Months:
		return 3
	case Window6Months:
		return 6
	case Window9Months:
		return 9
	default:
		return -1
	}
}

// WindowResult holds persistency counts for one (carrier, window) pair.
// Neutral-classified policies are excluded from both counts.
type WindowResult struct {
	PositiveCount      int     `json:"positive_count"`
	NegativeCount      int     `json:"negative_count"`
	PositivePercentage float64 `json:"positive_percentage"`
}

// StatusCount is one entry of a status breakdown. Percentage is relative to
// every record in the window, classified or not.
type StatusCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatusBreakdown maps raw carrier statuses (or the synthetic "Other" bucket)
// to their counts within one window.
type StatusBreakdown map[string]StatusCount

// Severity ranks a lapse candidate for triage. Critical sorts first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns the sort rank of the severity, lower is more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// LapseCandidate is a policy flagged as lapsed or at risk of lapsing,
// unified across carriers for display. Computed fresh per analysis request.
type LapseCandidate struct {
	ID               string   `json:"id"`
	Carrier          string   `json:"carrier"`
	InsuredFirstName string   `json:"insured_first_name"`
	InsuredLastName  string   `json:"insured_last_name"`
	Phone            string   `json:"phone,omitempty"`
	Statuses         []string `json:"statuses"`
	DaysToLapse      *int     `json:"days_to_lapse,omitempty"`
	Action           string   `json:"action"`
	Severity         Severity `json:"severity"`
}
