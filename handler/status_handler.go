package handler

import (
	"errors"
	"log"
	"sync"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	reports  *usecase.ReportsService
	statuses *usecase.StatusService
	cache    *services.StatusCache // optional read-through cache
	calendar model.Calendar
}

func NewStatusHandler(reports *usecase.ReportsService, statuses *usecase.StatusService, cache *services.StatusCache, calendar model.Calendar) *StatusHandler {
	return &StatusHandler{
		reports:  reports,
		statuses: statuses,
		cache:    cache,
		calendar: calendar,
	}
}

// GetStatus evaluates one report. Cached snapshots are served unless the
// client asks for a fresh evaluation with ?fresh=true.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	identifier := c.Param("id")
	fresh := c.Query("fresh") == "true"

	if h.cache != nil && !fresh {
		cached, err := h.cache.GetStatus(c.Request.Context(), identifier)
		if err != nil {
			log.Printf("WARN: [StatusHandler] Cache lookup failed for %s: %v", identifier, err)
		} else if cached != nil {
			utils.Success(c, dto.ToStatusResponse(cached))
			return
		}
	}

	report, err := h.reports.GetReport(identifier)
	if err != nil {
		log.Printf("ERROR: [StatusHandler] Failed to load report %s: %v", identifier, err)
		utils.InternalError(c, "Failed to load report")
		return
	}
	if report == nil {
		utils.NotFound(c, "Report not found")
		return
	}

	status, err := h.fetchAndCache(c, report)
	if err != nil {
		var authErr *usecase.AuthorizationError
		if errors.As(err, &authErr) {
			utils.Forbidden(c, "Reminder access not authorized")
			return
		}
		log.Printf("ERROR: [StatusHandler] Failed to evaluate report %s: %v", identifier, err)
		utils.InternalError(c, "Failed to evaluate report")
		return
	}

	utils.Success(c, dto.ToStatusResponse(status))
}

// GetAllStatuses evaluates every report concurrently. With ?today=true only
// reports flagged for the today screen are included.
func (h *StatusHandler) GetAllStatuses(c *gin.Context) {
	todayOnly := c.Query("today") == "true"

	reports, err := h.reports.GetReports()
	if err != nil {
		log.Printf("ERROR: [StatusHandler] Failed to load reports: %v", err)
		utils.InternalError(c, "Failed to load reports")
		return
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		statuses []*model.Status
		failed   int
	)

	for _, report := range reports {
		if todayOnly && !report.ShowInTodayScreen {
			continue
		}

		wg.Add(1)
		go func(report *model.Report) {
			defer wg.Done()

			status, err := h.fetchAndCache(c, report)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("ERROR: [StatusHandler] Failed to evaluate report %s: %v", report.Identifier, err)
				failed++
				return
			}
			statuses = append(statuses, status)
		}(report)
	}
	wg.Wait()

	utils.Success(c, gin.H{
		"statuses": dto.ToStatusResponses(statuses),
		"failed":   failed,
	})
}

func (h *StatusHandler) fetchAndCache(c *gin.Context, report *model.Report) (*model.Status, error) {
	status, err := h.statuses.FetchStatus(c.Request.Context(), report, h.calendar)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		if err := h.cache.SetStatus(c.Request.Context(), status); err != nil {
			log.Printf("WARN: [StatusHandler] Failed to cache status for %s: %v", status.ReportIdentifier, err)
		}
	}
	return status, nil
}
