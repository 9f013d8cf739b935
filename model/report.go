package model

import "time"

type DisplayStyle string

const (
	DisplayStyleProgress  DisplayStyle = "progress"
	DisplayStyleRemaining DisplayStyle = "remaining"
)

// Report is a user defined goal measured against reminder items. When
// SearchTerm is set it takes precedence over ListIdentifier; when Goal is nil
// the goal is computed dynamically from all matched reminders.
type Report struct {
	Identifier           string       `json:"identifier"`
	DisplayStyle         DisplayStyle `json:"display_style"`
	ListIdentifier       string       `json:"list_identifier,omitempty"`
	SearchTerm           string       `json:"search_term,omitempty"`
	IsPriorityBased      bool         `json:"is_priority_based"`
	TimeRange            *TimeRange   `json:"time_range,omitempty"`
	Deadline             *time.Time   `json:"deadline,omitempty"`
	Goal                 *int         `json:"goal,omitempty"`
	ShowInTodayScreen    bool         `json:"show_in_today_screen"`
	NotificationsEnabled bool         `json:"notifications_enabled"`
}

// Score returns the point value a reminder contributes towards the report.
// Priority based reports weigh by priority, everything else counts flat.
func (r *Report) Score(reminder *Reminder) int {
	if r.IsPriorityBased {
		switch reminder.Priority {
		case PriorityHigh:
			return 5
		case PriorityMedium:
			return 3
		case PriorityLow:
			return 1
		default:
			return 0
		}
	}
	return 1
}

// Equal compares reports by identity only
func (r *Report) Equal(other *Report) bool {
	if other == nil {
		return false
	}
	return r.Identifier == other.Identifier
}
