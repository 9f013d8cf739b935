package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

// ReminderSource is the reminder data source consumed by the status
// evaluation. Implemented by repository.RemindersRepo and faked in tests.
type ReminderSource interface {
	VerifyAuthorization(ctx context.Context) (model.AuthorizationStatus, error)
	AllLists(ctx context.Context) ([]*model.ReminderList, error)
	FetchAll(ctx context.Context, listIDs []string) ([]*model.Reminder, error)
	FetchCompletedInRange(ctx context.Context, lower, upper time.Time, listIDs []string) ([]*model.Reminder, error)
	FetchIncompleteDueInRange(ctx context.Context, lower, upper time.Time, listIDs []string) ([]*model.Reminder, error)
}

// AuthorizationError signals that the reminder data source refused access
type AuthorizationError struct {
	Status model.AuthorizationStatus
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("reminder access not authorized (status: %s)", e.Status)
}

// StatusService evaluates reports into progress statuses
type StatusService struct {
	source ReminderSource
}

func NewStatusService(source ReminderSource) *StatusService {
	return &StatusService{source: source}
}

// FetchStatus evaluates a report against the reminder source using the given
// calendar. Either a complete status or an error is returned, never partial
// results.
func (svc *StatusService) FetchStatus(ctx context.Context, report *model.Report, cal model.Calendar) (*model.Status, error) {
	authStatus, err := svc.source.VerifyAuthorization(ctx)
	if err != nil {
		utils.TrackStatusEvaluation("failure")
		return nil, err
	}
	if authStatus != model.AuthorizationAuthorized {
		utils.TrackStatusEvaluation("failure")
		return nil, &AuthorizationError{Status: authStatus}
	}

	status := model.NewStatus(report)

	// Resolve the target lists and the title/tint metadata. A search term
	// wins over a list reference; matching then happens post-fetch on the
	// reminder titles.
	var listIDs []string
	var matchesSearch func(*model.Reminder) bool

	if term := strings.TrimSpace(report.SearchTerm); term != "" {
		status.Title = term
		termLowerCased := strings.ToLower(term)
		matchesSearch = func(reminder *model.Reminder) bool {
			return strings.Contains(strings.ToLower(reminder.Title), termLowerCased)
		}

	} else if report.ListIdentifier != "" {
		allLists, err := svc.source.AllLists(ctx)
		if err != nil {
			utils.TrackStatusEvaluation("failure")
			return nil, err
		}
		for _, list := range allLists {
			if list.ListID != report.ListIdentifier {
				continue
			}
			listIDs = []string{list.ListID}
			status.Title = list.Title
			status.TintColor = list.Color
			break
		}
	}

	if status.Title == "" {
		status.Title = "Overall"
	}

	if report.TimeRange != nil {
		lower := report.TimeRange.LowerBound(cal)
		upper := report.TimeRange.UpperBound(cal)
		status.TimeRangeLowerBound = &lower
		status.TimeRangeUpperBound = &upper
	}

	if status.TimeRangeLowerBound == nil && status.TimeRangeUpperBound == nil {
		if err := svc.evaluateAllTime(ctx, report, status, listIDs, matchesSearch); err != nil {
			utils.TrackStatusEvaluation("failure")
			return nil, err
		}
	} else {
		if err := svc.evaluateWindow(ctx, report, status, listIDs, matchesSearch); err != nil {
			utils.TrackStatusEvaluation("failure")
			return nil, err
		}
	}

	utils.TrackStatusEvaluation("success")
	return status, nil
}

// evaluateAllTime scores every matching reminder in a single pass. Without
// an explicit goal every item's score counts towards it, and the window
// bounds are inferred from the earliest creation date and the latest due
// date. An explicit deadline overrides the inferred upper bound.
func (svc *StatusService) evaluateAllTime(ctx context.Context, report *model.Report, status *model.Status, listIDs []string, matchesSearch func(*model.Reminder) bool) error {
	reminders, err := svc.source.FetchAll(ctx, listIDs)
	if err != nil {
		return err
	}

	status.Goal = 0
	if report.Goal != nil {
		status.Goal = *report.Goal
	}
	status.Completed = 0

	for _, reminder := range reminders {
		if matchesSearch != nil && !matchesSearch(reminder) {
			continue
		}

		score := report.Score(reminder)
		if report.Goal == nil {
			status.Goal += score
		}
		if reminder.Complete {
			status.Completed += score
		}

		if !reminder.CreatedAt.IsZero() {
			if status.TimeRangeLowerBound == nil || reminder.CreatedAt.Before(*status.TimeRangeLowerBound) {
				createdAt := reminder.CreatedAt
				status.TimeRangeLowerBound = &createdAt
			}
		}
		if !reminder.DueDate.IsZero() {
			if status.TimeRangeUpperBound == nil || reminder.DueDate.After(*status.TimeRangeUpperBound) {
				dueDate := reminder.DueDate
				status.TimeRangeUpperBound = &dueDate
			}
		}
	}

	if report.Deadline != nil {
		deadline := *report.Deadline
		status.TimeRangeUpperBound = &deadline
	}
	return nil
}

// evaluateWindow scores the reminders completed within the resolved window.
// Without an explicit goal a second fetch adds the incomplete reminders due
// within the window, so the goal becomes completed + still open.
func (svc *StatusService) evaluateWindow(ctx context.Context, report *model.Report, status *model.Status, listIDs []string, matchesSearch func(*model.Reminder) bool) error {
	completed, err := svc.source.FetchCompletedInRange(ctx, *status.TimeRangeLowerBound, *status.TimeRangeUpperBound, listIDs)
	if err != nil {
		return err
	}

	status.Completed = 0
	for _, reminder := range completed {
		if matchesSearch != nil && !matchesSearch(reminder) {
			continue
		}
		status.Completed += report.Score(reminder)
	}

	if report.Goal != nil {
		status.Goal = *report.Goal
		return nil
	}

	incomplete, err := svc.source.FetchIncompleteDueInRange(ctx, *status.TimeRangeLowerBound, *status.TimeRangeUpperBound, listIDs)
	if err != nil {
		return err
	}

	status.Goal = status.Completed
	for _, reminder := range incomplete {
		if matchesSearch != nil && !matchesSearch(reminder) {
			continue
		}
		status.Goal += report.Score(reminder)
	}
	return nil
}
