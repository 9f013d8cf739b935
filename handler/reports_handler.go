package handler

import (
	"log"
	"strings"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	service *usecase.ReportsService
	cache   *services.StatusCache // optional, invalidated on report changes
}

func NewReportsHandler(service *usecase.ReportsService, cache *services.StatusCache) *ReportsHandler {
	return &ReportsHandler{service: service, cache: cache}
}

func (h *ReportsHandler) CreateReport(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.CreateReport(dto.ToReportModel(&req))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.Conflict(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "cannot be negative") {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("ERROR: [ReportsHandler] Failed to create report: %v", err)
		utils.InternalError(c, "Failed to create report")
		return
	}

	utils.Created(c, dto.ToReportResponse(report))
}

func (h *ReportsHandler) GetReports(c *gin.Context) {
	reports, err := h.service.GetReports()
	if err != nil {
		log.Printf("ERROR: [ReportsHandler] Failed to load reports: %v", err)
		utils.InternalError(c, "Failed to load reports")
		return
	}
	utils.Success(c, dto.ToReportResponses(reports))
}

func (h *ReportsHandler) GetReport(c *gin.Context) {
	report, err := h.service.GetReport(c.Param("id"))
	if err != nil {
		log.Printf("ERROR: [ReportsHandler] Failed to load report %s: %v", c.Param("id"), err)
		utils.InternalError(c, "Failed to load report")
		return
	}
	if report == nil {
		utils.NotFound(c, "Report not found")
		return
	}
	utils.Success(c, dto.ToReportResponse(report))
}

// GetReportsGrouped returns reports of one display style grouped by time
// range, the way a progress screen renders them.
func (h *ReportsHandler) GetReportsGrouped(c *gin.Context) {
	style := model.DisplayStyle(c.DefaultQuery("display_style", string(model.DisplayStyleProgress)))

	groups, err := h.service.GetReportsGrouped(style)
	if err != nil {
		if strings.Contains(err.Error(), "invalid display style") {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("ERROR: [ReportsHandler] Failed to load grouped reports: %v", err)
		utils.InternalError(c, "Failed to load reports")
		return
	}

	utils.Success(c, dto.ToReportGroupResponses(groups))
}

func (h *ReportsHandler) UpdateReport(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	identifier := c.Param("id")
	report, err := h.service.UpdateReport(identifier, dto.ToReportModel(&req))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFound(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "cannot be negative") {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("ERROR: [ReportsHandler] Failed to update report %s: %v", identifier, err)
		utils.InternalError(c, "Failed to update report")
		return
	}

	h.invalidateStatus(c, identifier)
	utils.Success(c, dto.ToReportResponse(report))
}

func (h *ReportsHandler) DeleteReport(c *gin.Context) {
	identifier := c.Param("id")
	if err := h.service.DeleteReport(identifier); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFound(c, err.Error())
			return
		}
		log.Printf("ERROR: [ReportsHandler] Failed to delete report %s: %v", identifier, err)
		utils.InternalError(c, "Failed to delete report")
		return
	}

	h.invalidateStatus(c, identifier)
	utils.Success(c, gin.H{"deleted": identifier})
}

// invalidateStatus drops the cached status snapshot of a changed report.
// Cache failures only get logged, the report change already succeeded.
func (h *ReportsHandler) invalidateStatus(c *gin.Context, identifier string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteStatus(c.Request.Context(), identifier); err != nil {
		log.Printf("WARN: [ReportsHandler] Failed to invalidate cached status for %s: %v", identifier, err)
	}
}
