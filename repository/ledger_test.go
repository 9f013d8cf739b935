package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"main/model"
)

func testCalendar(now time.Time) model.Calendar {
	cal := model.NewCalendar(time.UTC, time.Monday)
	cal.NowFunc = func() time.Time { return now }
	return cal
}

func TestLedgerHasSentSameDay(t *testing.T) {
	dir := t.TempDir()
	ledger := NewLedgerRepo(dir, dir)
	cal := testCalendar(time.Date(2026, 8, 26, 17, 0, 0, 0, time.UTC))

	morning := model.NewSentNotification("gym", model.NotificationBehindSchedule, time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC))
	ledger.Add(morning)

	evening := model.NewSentNotification("gym", model.NotificationBehindSchedule, time.Date(2026, 8, 26, 19, 0, 0, 0, time.UTC))
	if !ledger.HasSent(evening, cal) {
		t.Error("same report, type and day should dedupe")
	}

	otherType := model.NewSentNotification("gym", model.NotificationSuccess, evening.SendAt)
	if ledger.HasSent(otherType, cal) {
		t.Error("different type must not dedupe")
	}

	otherReport := model.NewSentNotification("books", model.NotificationBehindSchedule, evening.SendAt)
	if ledger.HasSent(otherReport, cal) {
		t.Error("different report must not dedupe")
	}

	nextDay := model.NewSentNotification("gym", model.NotificationBehindSchedule, time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))
	if ledger.HasSent(nextDay, cal) {
		t.Error("next day must not dedupe")
	}
}

func TestLedgerPurge(t *testing.T) {
	dir := t.TempDir()
	ledger := NewLedgerRepo(dir, dir)
	cal := testCalendar(time.Date(2026, 8, 26, 17, 0, 0, 0, time.UTC))

	stale := model.NewSentNotification("gym", model.NotificationOnSchedule, time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC))
	fresh := model.NewSentNotification("gym", model.NotificationBehindSchedule, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
	ledger.Add(stale)
	ledger.Add(fresh)

	// cached media for the stale entry must go away with it
	staleMedia := ledger.MediaPath(stale.Identifier)
	if err := os.WriteFile(staleMedia, []byte("gif"), 0644); err != nil {
		t.Fatalf("writing media fixture: %v", err)
	}

	ledger.Purge(cal)

	remaining := ledger.Load()
	if len(remaining) != 1 {
		t.Fatalf("expected 1 entry after purge, got %d", len(remaining))
	}
	if remaining[0].Identifier != fresh.Identifier {
		t.Errorf("the entry sent at start of today must survive the purge")
	}
	if _, err := os.Stat(staleMedia); !os.IsNotExist(err) {
		t.Errorf("stale media file should have been removed")
	}
}

func TestLedgerUnreadableFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	ledger := NewLedgerRepo(dir, dir)

	if err := os.WriteFile(filepath.Join(dir, ledgerFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt ledger: %v", err)
	}

	if got := ledger.Load(); len(got) != 0 {
		t.Errorf("corrupt ledger should read as empty, got %d entries", len(got))
	}
}
