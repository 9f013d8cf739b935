package model

import "time"

// Status is the evaluated progress snapshot of a report. It is recomputed on
// demand and never persisted.
type Status struct {
	ReportIdentifier    string     `json:"report_identifier"`
	Title               string     `json:"title"`
	TintColor           string     `json:"tint_color,omitempty"`
	Goal                int        `json:"goal"`
	Completed           int        `json:"completed"`
	TimeRangeLowerBound *time.Time `json:"time_range_lower_bound,omitempty"`
	TimeRangeUpperBound *time.Time `json:"time_range_upper_bound,omitempty"`
}

func NewStatus(report *Report) *Status {
	return &Status{
		ReportIdentifier: report.Identifier,
		Goal:             1,
	}
}

// CompletedPercentage is completed/goal. A status without a positive goal
// counts as fully completed.
func (s *Status) CompletedPercentage() float64 {
	if s.Goal <= 0 {
		return 1.0
	}
	return float64(s.Completed) / float64(s.Goal)
}

func (s *Status) RemainingPercentage() float64 {
	return 1.0 - s.CompletedPercentage()
}

func (s *Status) Remaining() int {
	return s.Goal - s.Completed
}

func (s *Status) IsDone() bool {
	return s.CompletedPercentage() >= 1.0
}

func (s *Status) Equal(other *Status) bool {
	if other == nil {
		return false
	}
	return s.ReportIdentifier == other.ReportIdentifier &&
		s.Title == other.Title &&
		s.TintColor == other.TintColor &&
		s.Goal == other.Goal &&
		s.Completed == other.Completed
}
