package services

import (
	"context"
	"log"
	"sync"
	"time"

	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// NotificationCategory tags every dispatched notification so a receiver can
// decide whether it needs further processing.
const NotificationCategory = "giphyNotification"

// Notification window: schedule notifications only fire when the local
// wall-clock hour is strictly between these bounds.
const (
	notificationWindowOpensAfter   = 15
	notificationWindowClosesBefore = 21
)

// Schedule thresholds on completedPercentage - passedTimePercentage
const (
	behindScheduleThreshold = -0.05
	onScheduleThreshold     = 0.10
)

// Notifier decides per report whether a schedule-status notification is due,
// builds its content and dispatches it. Already sent notifications are
// tracked in the ledger so the sweep can run repeatedly within one day
// without duplicating sends.
type Notifier struct {
	Reports  *repository.ReportsRepo
	Statuses *usecase.StatusService
	Ledger   *repository.LedgerRepo
	Messages *MessageStore
	Giphy    *GiphyClient  // optional, nil sends without media
	Center   NotificationCenter
	Cache    *StatusCache // optional status snapshot cache
	Calendar model.Calendar

	// serializes full sweeps: the ledger check and the following dispatch
	// are only atomic when no second sweep runs in between
	sweepMu sync.Mutex
}

// RequestAuthorization asks the notification center for delivery permission
func (n *Notifier) RequestAuthorization(ctx context.Context) error {
	return n.Center.RequestAuthorization(ctx)
}

// SendWhereNeeded evaluates every stored report and dispatches all due
// notifications. Reports are evaluated concurrently; one report's failure
// never stops its siblings. The collected statuses and errors are returned
// once every evaluation finished. Overlapping calls are serialized so the
// per-day dedup holds even when the periodic sweep and a manual trigger
// coincide.
func (n *Notifier) SendWhereNeeded(ctx context.Context) ([]*model.Status, []error) {
	n.sweepMu.Lock()
	defer n.sweepMu.Unlock()

	timer := prometheus.NewTimer(utils.SweepDuration)
	defer timer.ObserveDuration()

	n.Ledger.Purge(n.Calendar)

	reports, err := n.Reports.LoadReports()
	if err != nil {
		return nil, []error{err}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		allStatus []*model.Status
		allErrors []error
	)

	for _, report := range reports {
		if !report.NotificationsEnabled {
			continue
		}

		wg.Add(1)
		go func(report *model.Report) {
			defer wg.Done()

			status, err := n.SendIfNeeded(ctx, report)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				allErrors = append(allErrors, err)
			}
			if status != nil {
				allStatus = append(allStatus, status)
			}
		}(report)
	}
	wg.Wait()

	return allStatus, allErrors
}

// SendIfNeeded evaluates a single report and dispatches a notification when
// one is due. A nil status with a nil error means the report was not
// eligible; the decision itself never produces an error, only evaluation and
// dispatch can.
func (n *Notifier) SendIfNeeded(ctx context.Context, report *model.Report) (*model.Status, error) {
	if !report.NotificationsEnabled {
		return nil, nil
	}

	now := n.Calendar.Now()
	if hour := now.Hour(); hour <= notificationWindowOpensAfter || hour >= notificationWindowClosesBefore {
		return nil, nil
	}

	status, err := n.Statuses.FetchStatus(ctx, report, n.Calendar)
	if err != nil {
		return nil, err
	}

	if n.Cache != nil {
		if err := n.Cache.SetStatus(ctx, status); err != nil {
			log.Printf("WARN: [Notifier] Failed to cache status for report %s: %v", status.ReportIdentifier, err)
		}
	}

	if status.Goal <= 0 {
		return nil, nil
	}

	// A completed goal is announced exactly once per day, regardless of any
	// schedule math.
	if status.IsDone() {
		notification := model.NewSentNotification(status.ReportIdentifier, model.NotificationSuccess, now)
		if n.Ledger.HasSent(notification, n.Calendar) {
			return status, nil
		}
		return status, n.send(ctx, notification, status)
	}

	today := n.Calendar.StartOfDay(now)
	notificationDate := today
	var windowStart, windowEnd *time.Time

	if report.TimeRange != nil {
		switch *report.TimeRange {
		case model.TimeRangeCurrentWeek:
			start := n.Calendar.StartOfWeek(today)
			end := start.AddDate(0, 0, 7)
			windowStart, windowEnd = &start, &end

		case model.TimeRangeCurrentMonth:
			start := startOfMonth(n.Calendar, today)
			end := start.AddDate(0, 1, 0)
			windowStart, windowEnd = &start, &end
			// one notification per week, near week's end
			notificationDate = n.endOfWorkWeek(today)

		case model.TimeRangeCurrentYear:
			start := startOfYear(n.Calendar, today)
			end := start.AddDate(1, 0, 0)
			windowStart, windowEnd = &start, &end
			notificationDate = n.endOfWorkWeek(today)
		}

	} else if status.TimeRangeLowerBound != nil && report.Deadline != nil {
		windowStart = status.TimeRangeLowerBound
		windowEnd = report.Deadline

		// weekly cadence while the deadline is at least a week out, daily
		// once it gets close
		daysUntilDeadline := int(report.Deadline.Sub(today).Hours() / 24)
		if daysUntilDeadline >= 7 {
			notificationDate = n.endOfWorkWeek(today)
		} else {
			notificationDate = today
		}
	}

	if windowStart == nil || windowEnd == nil || !n.Calendar.SameDay(today, notificationDate) {
		return status, nil
	}

	totalHours := windowEnd.Sub(*windowStart).Hours()
	if totalHours <= 0 {
		// malformed window, treat as not due instead of dividing by it
		return status, nil
	}
	passedHours := now.Sub(*windowStart).Hours()
	passedTimePercentage := passedHours / totalHours
	if passedTimePercentage < 0 {
		return status, nil
	}

	relativeProgress := status.CompletedPercentage() - passedTimePercentage

	var notificationType model.NotificationType
	switch {
	case relativeProgress <= behindScheduleThreshold:
		notificationType = model.NotificationBehindSchedule
	case relativeProgress <= onScheduleThreshold:
		notificationType = model.NotificationOnSchedule
	default:
		notificationType = model.NotificationBeforeSchedule
	}

	notification := model.NewSentNotification(status.ReportIdentifier, notificationType, today)
	if n.Ledger.HasSent(notification, n.Calendar) {
		return status, nil
	}
	return status, n.send(ctx, notification, status)
}

// send builds the notification content and dispatches it. Media failures are
// logged and the notification goes out without an attachment; only dispatch
// failures surface. The ledger records the notification after a successful
// send.
func (n *Notifier) send(ctx context.Context, notification model.SentNotification, status *model.Status) error {
	gifURL := ""
	attachment := ""

	if n.Giphy != nil {
		images, err := n.Giphy.Random(ctx, notification.Type.RandomTerm())
		if err != nil {
			log.Printf("WARN: [Notifier] GIF lookup failed for report %s: %v", status.ReportIdentifier, err)
			utils.TrackError("media", "giphy_lookup_failed")
		} else if best := images.BestURL(); best != "" {
			gifURL = best
			localPath := n.Ledger.MediaPath(notification.Identifier)
			if err := n.Giphy.Download(ctx, best, localPath); err != nil {
				log.Printf("WARN: [Notifier] GIF download failed for report %s: %v", status.ReportIdentifier, err)
				utils.TrackError("media", "gif_download_failed")
			} else {
				attachment = localPath
			}
		}
	}

	messages := n.Messages
	if messages == nil {
		messages = NewMessageStore()
	}

	request := &NotificationRequest{
		ID:         notification.Identifier,
		Category:   NotificationCategory,
		Title:      messages.Randomf(notification.Type, MessageKeyTitle, status.Title),
		Body:       messages.Randomf(notification.Type, MessageKeyBody, status.Title),
		Sound:      "default",
		GifURL:     gifURL,
		Attachment: attachment,
	}

	if err := n.Center.Send(ctx, request); err != nil {
		utils.TrackError("notification", "dispatch_failed")
		return err
	}

	n.Ledger.Add(notification)
	utils.TrackNotificationSent(string(notification.Type))
	return nil
}

// date helpers

// endOfWorkWeek is the last moment of the current week, one second before
// the next week starts.
func (n *Notifier) endOfWorkWeek(today time.Time) time.Time {
	return n.Calendar.StartOfWeek(today).AddDate(0, 0, 7).Add(-time.Second)
}

func startOfMonth(cal model.Calendar, date time.Time) time.Time {
	date = date.In(cal.Location)
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, cal.Location)
}

func startOfYear(cal model.Calendar, date time.Time) time.Time {
	date = date.In(cal.Location)
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, cal.Location)
}
