package dto

import (
	"time"

	"main/model"
)

type ReportRequest struct {
	Identifier           string     `json:"identifier"`
	DisplayStyle         string     `json:"display_style" binding:"omitempty,oneof=progress remaining"`
	ListIdentifier       string     `json:"list_identifier"`
	SearchTerm           string     `json:"search_term"`
	IsPriorityBased      bool       `json:"is_priority_based"`
	TimeRange            string     `json:"time_range" binding:"omitempty,timerange"`
	Deadline             *time.Time `json:"deadline"`
	Goal                 *int       `json:"goal" binding:"omitempty,min=0"`
	ShowInTodayScreen    bool       `json:"show_in_today_screen"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
}

// Convert a ReportRequest to a model.Report
func ToReportModel(request *ReportRequest) *model.Report {
	report := &model.Report{
		Identifier:           request.Identifier,
		DisplayStyle:         model.DisplayStyle(request.DisplayStyle),
		ListIdentifier:       request.ListIdentifier,
		SearchTerm:           request.SearchTerm,
		IsPriorityBased:      request.IsPriorityBased,
		Deadline:             request.Deadline,
		Goal:                 request.Goal,
		ShowInTodayScreen:    request.ShowInTodayScreen,
		NotificationsEnabled: request.NotificationsEnabled,
	}

	if request.TimeRange != "" {
		timeRange := model.TimeRange(request.TimeRange)
		report.TimeRange = &timeRange
	}

	return report
}

type ReportResponse struct {
	Identifier           string     `json:"identifier"`
	DisplayStyle         string     `json:"display_style"`
	ListIdentifier       string     `json:"list_identifier,omitempty"`
	SearchTerm           string     `json:"search_term,omitempty"`
	IsPriorityBased      bool       `json:"is_priority_based"`
	TimeRange            string     `json:"time_range,omitempty"`
	Deadline             *time.Time `json:"deadline,omitempty"`
	Goal                 *int       `json:"goal,omitempty"`
	ShowInTodayScreen    bool       `json:"show_in_today_screen"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
}

// Convert a model.Report to a ReportResponse
func ToReportResponse(report *model.Report) ReportResponse {
	response := ReportResponse{
		Identifier:           report.Identifier,
		DisplayStyle:         string(report.DisplayStyle),
		ListIdentifier:       report.ListIdentifier,
		SearchTerm:           report.SearchTerm,
		IsPriorityBased:      report.IsPriorityBased,
		Deadline:             report.Deadline,
		Goal:                 report.Goal,
		ShowInTodayScreen:    report.ShowInTodayScreen,
		NotificationsEnabled: report.NotificationsEnabled,
	}

	if report.TimeRange != nil {
		response.TimeRange = string(*report.TimeRange)
	}

	return response
}

// Convert slice of model.Report to slice of ReportResponse
func ToReportResponses(reports []*model.Report) []ReportResponse {
	responses := make([]ReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = ToReportResponse(report)
	}
	return responses
}

type ReportGroupResponse struct {
	TimeRange string           `json:"time_range,omitempty"`
	Reports   []ReportResponse `json:"reports"`
}

// Convert grouped reports to grouped responses, labelling each group with its
// time range. Groups are never empty, the first report carries the label.
func ToReportGroupResponses(groups [][]*model.Report) []ReportGroupResponse {
	responses := make([]ReportGroupResponse, len(groups))
	for i, group := range groups {
		groupResponse := ReportGroupResponse{
			Reports: ToReportResponses(group),
		}
		if len(group) > 0 && group[0].TimeRange != nil {
			groupResponse.TimeRange = string(*group[0].TimeRange)
		}
		responses[i] = groupResponse
	}
	return responses
}
