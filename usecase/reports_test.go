package usecase

import (
	"strings"
	"testing"

	"main/model"
	"main/repository"
)

func newReportsService(t *testing.T) *ReportsService {
	t.Helper()
	return NewReportsService(repository.NewReportsRepo(t.TempDir()))
}

func TestCreateReportMintsIdentifier(t *testing.T) {
	svc := newReportsService(t)

	report, err := svc.CreateReport(&model.Report{SearchTerm: "gym"})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if report.Identifier == "" {
		t.Error("a missing identifier should be minted")
	}
	if report.DisplayStyle != model.DisplayStyleProgress {
		t.Errorf("DisplayStyle = %s, want the progress default", report.DisplayStyle)
	}
}

func TestCreateReportRejectsDuplicate(t *testing.T) {
	svc := newReportsService(t)

	if _, err := svc.CreateReport(&model.Report{Identifier: "gym"}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	_, err := svc.CreateReport(&model.Report{Identifier: "gym"})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate rejection, got %v", err)
	}
}

func TestCreateReportValidation(t *testing.T) {
	svc := newReportsService(t)

	badRange := model.TimeRange("nextWeek")
	negative := -1

	tests := []struct {
		name   string
		report *model.Report
		want   string
	}{
		{"invalid time range", &model.Report{TimeRange: &badRange}, "invalid time range"},
		{"negative goal", &model.Report{Goal: &negative}, "goal cannot be negative"},
		{"invalid display style", &model.Report{DisplayStyle: "pie"}, "invalid display style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReport(tt.report)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q error, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateReportKeepsIdentifier(t *testing.T) {
	svc := newReportsService(t)

	if _, err := svc.CreateReport(&model.Report{Identifier: "gym", SearchTerm: "gym"}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}

	updated, err := svc.UpdateReport("gym", &model.Report{Identifier: "something-else", SearchTerm: "fitness"})
	if err != nil {
		t.Fatalf("UpdateReport: %v", err)
	}
	if updated.Identifier != "gym" {
		t.Errorf("Identifier = %q, the path identifier must win", updated.Identifier)
	}
	if updated.SearchTerm != "fitness" {
		t.Errorf("SearchTerm = %q, want the new value", updated.SearchTerm)
	}
}

func TestUpdateAndDeleteMissingReport(t *testing.T) {
	svc := newReportsService(t)

	if _, err := svc.UpdateReport("gone", &model.Report{}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found on update, got %v", err)
	}
	if err := svc.DeleteReport("gone"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found on delete, got %v", err)
	}
}

func TestDeleteReport(t *testing.T) {
	svc := newReportsService(t)

	if _, err := svc.CreateReport(&model.Report{Identifier: "gym"}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if err := svc.DeleteReport("gym"); err != nil {
		t.Fatalf("DeleteReport: %v", err)
	}

	report, err := svc.GetReport("gym")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if report != nil {
		t.Error("deleted report should be gone")
	}
}
