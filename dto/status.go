package dto

import (
	"time"

	"main/model"
)

type StatusResponse struct {
	ReportIdentifier    string     `json:"report_identifier"`
	Title               string     `json:"title"`
	TintColor           string     `json:"tint_color,omitempty"`
	Goal                int        `json:"goal"`
	Completed           int        `json:"completed"`
	Remaining           int        `json:"remaining"`
	CompletedPercentage float64    `json:"completed_percentage"`
	RemainingPercentage float64    `json:"remaining_percentage"`
	IsDone              bool       `json:"is_done"`
	TimeRangeLowerBound *time.Time `json:"time_range_lower_bound,omitempty"`
	TimeRangeUpperBound *time.Time `json:"time_range_upper_bound,omitempty"`
}

// Convert a model.Status to a StatusResponse with its derived metrics
func ToStatusResponse(status *model.Status) StatusResponse {
	return StatusResponse{
		ReportIdentifier:    status.ReportIdentifier,
		Title:               status.Title,
		TintColor:           status.TintColor,
		Goal:                status.Goal,
		Completed:           status.Completed,
		Remaining:           status.Remaining(),
		CompletedPercentage: status.CompletedPercentage(),
		RemainingPercentage: status.RemainingPercentage(),
		IsDone:              status.IsDone(),
		TimeRangeLowerBound: status.TimeRangeLowerBound,
		TimeRangeUpperBound: status.TimeRangeUpperBound,
	}
}

// Convert slice of model.Status to slice of StatusResponse
func ToStatusResponses(statuses []*model.Status) []StatusResponse {
	responses := make([]StatusResponse, len(statuses))
	for i, status := range statuses {
		responses[i] = ToStatusResponse(status)
	}
	return responses
}
