package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"main/model"
)

const reportsFileName = "reports.json"

// ReportsRepo persists the user defined reports as a single JSON file in the
// data directory. Writes notify every registered subscriber.
type ReportsRepo struct {
	path string

	mu          sync.Mutex
	subscribers []func()
}

func NewReportsRepo(dataDir string) *ReportsRepo {
	return &ReportsRepo{path: filepath.Join(dataDir, reportsFileName)}
}

// Subscribe registers a callback invoked after every successful write
func (r *ReportsRepo) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// LoadReports loads all reports. A missing file yields an empty slice.
func (r *ReportsRepo) LoadReports() ([]*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// LoadReportsByDisplayStyle loads all reports rendered with the given style
func (r *ReportsRepo) LoadReportsByDisplayStyle(style model.DisplayStyle) ([]*model.Report, error) {
	reports, err := r.LoadReports()
	if err != nil {
		return nil, err
	}

	var filtered []*model.Report
	for _, report := range reports {
		if report.DisplayStyle == style {
			filtered = append(filtered, report)
		}
	}
	return filtered, nil
}

// LoadReportsGrouped loads reports with the given display style grouped by
// time range: reports without a time range come first, the remaining groups
// follow in AvailableTimeRanges order. Reports rejected by the include
// filter are skipped.
func (r *ReportsRepo) LoadReportsGrouped(style model.DisplayStyle, include func(*model.Report) bool) ([][]*model.Report, error) {
	reports, err := r.LoadReportsByDisplayStyle(style)
	if err != nil {
		return nil, err
	}

	var noTimeRange []*model.Report
	byTimeRange := make(map[model.TimeRange][]*model.Report)

	for _, report := range reports {
		if include != nil && !include(report) {
			continue
		}
		if report.TimeRange == nil {
			noTimeRange = append(noTimeRange, report)
			continue
		}
		byTimeRange[*report.TimeRange] = append(byTimeRange[*report.TimeRange], report)
	}

	var grouped [][]*model.Report
	if len(noTimeRange) > 0 {
		grouped = append(grouped, noTimeRange)
	}
	for _, timeRange := range model.AvailableTimeRanges {
		if group := byTimeRange[timeRange]; len(group) > 0 {
			grouped = append(grouped, group)
		}
	}
	return grouped, nil
}

// Save stores a report, replacing an existing one with the same identifier
func (r *ReportsRepo) Save(report *model.Report) error {
	r.mu.Lock()

	reports, err := r.read()
	if err != nil {
		r.mu.Unlock()
		return err
	}

	needsInsert := true
	for i, existing := range reports {
		if existing.Identifier != report.Identifier {
			continue
		}
		reports[i] = report
		needsInsert = false
		break
	}
	if needsInsert {
		reports = append(reports, report)
	}

	return r.flush(reports)
}

// SaveAll replaces the whole report collection
func (r *ReportsRepo) SaveAll(reports []*model.Report) error {
	r.mu.Lock()
	return r.flush(reports)
}

// Delete removes the report with the given identifier
func (r *ReportsRepo) Delete(identifier string) error {
	r.mu.Lock()

	reports, err := r.read()
	if err != nil {
		r.mu.Unlock()
		return err
	}

	for i, existing := range reports {
		if existing.Identifier != identifier {
			continue
		}
		reports = append(reports[:i], reports[i+1:]...)
		break
	}

	return r.flush(reports)
}

// LastModified returns the modification time of the reports file
func (r *ReportsRepo) LastModified() (time.Time, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// helper functions

func (r *ReportsRepo) read() ([]*model.Report, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*model.Report{}, nil
	}
	if err != nil {
		return nil, err
	}

	var reports []*model.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// flush persists the reports and notifies the subscribers. Callers hold
// r.mu; flush releases it before the callbacks run, so a subscriber may call
// back into the repo.
func (r *ReportsRepo) flush(reports []*model.Report) error {
	err := r.write(reports)
	subscribers := append([]func(){}, r.subscribers...)
	r.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range subscribers {
		fn()
	}
	return nil
}

func (r *ReportsRepo) write(reports []*model.Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0644)
}
