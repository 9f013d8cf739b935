package usecase

import (
	"errors"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

// ReportsService wraps the report store with validation
type ReportsService struct {
	repo *repository.ReportsRepo
}

func NewReportsService(repo *repository.ReportsRepo) *ReportsService {
	return &ReportsService{repo: repo}
}

// GetReports returns every stored report
func (svc *ReportsService) GetReports() ([]*model.Report, error) {
	return svc.repo.LoadReports()
}

// GetReport returns the report with the given identifier, nil when absent
func (svc *ReportsService) GetReport(identifier string) (*model.Report, error) {
	if identifier == "" {
		return nil, errors.New("report identifier is required")
	}

	reports, err := svc.repo.LoadReports()
	if err != nil {
		return nil, err
	}
	for _, report := range reports {
		if report.Identifier == identifier {
			return report, nil
		}
	}
	return nil, nil
}

// GetReportsGrouped returns the reports of a display style grouped by time range
func (svc *ReportsService) GetReportsGrouped(style model.DisplayStyle) ([][]*model.Report, error) {
	if err := validateDisplayStyle(style); err != nil {
		return nil, err
	}
	return svc.repo.LoadReportsGrouped(style, nil)
}

// CreateReport validates and stores a new report. A missing identifier is
// minted; an already existing identifier is rejected.
func (svc *ReportsService) CreateReport(report *model.Report) (*model.Report, error) {
	if report.Identifier == "" {
		report.Identifier = uuid.New().String()
	}

	existing, err := svc.GetReport(report.Identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("report identifier already exists")
	}

	if err := validateReport(report); err != nil {
		return nil, err
	}

	if err := svc.repo.Save(report); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateReport validates and replaces an existing report
func (svc *ReportsService) UpdateReport(identifier string, report *model.Report) (*model.Report, error) {
	existing, err := svc.GetReport(identifier)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("report not found")
	}

	report.Identifier = identifier
	if err := validateReport(report); err != nil {
		return nil, err
	}

	if err := svc.repo.Save(report); err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteReport removes an existing report
func (svc *ReportsService) DeleteReport(identifier string) error {
	existing, err := svc.GetReport(identifier)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("report not found")
	}
	return svc.repo.Delete(identifier)
}

// helper functions

func validateReport(report *model.Report) error {
	if report.DisplayStyle == "" {
		report.DisplayStyle = model.DisplayStyleProgress
	}
	if err := validateDisplayStyle(report.DisplayStyle); err != nil {
		return err
	}
	if report.Goal != nil && *report.Goal < 0 {
		return errors.New("goal cannot be negative")
	}
	if report.TimeRange != nil && !report.TimeRange.Valid() {
		return errors.New("invalid time range")
	}
	return nil
}

func validateDisplayStyle(style model.DisplayStyle) error {
	switch style {
	case model.DisplayStyleProgress, model.DisplayStyleRemaining:
		return nil
	default:
		return errors.New("invalid display style")
	}
}
