package repository

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"main/model"
	"main/utils"
)

const ledgerFileName = "sent_notifications.json"

// LedgerRepo persists the record of already sent notifications used for
// de-duplication. Reads fail open (an unreadable ledger counts as empty) and
// writes fail silent: a broken ledger must never block a notification
// decision.
type LedgerRepo struct {
	path     string
	mediaDir string

	mu sync.Mutex
}

func NewLedgerRepo(dataDir, mediaDir string) *LedgerRepo {
	return &LedgerRepo{
		path:     filepath.Join(dataDir, ledgerFileName),
		mediaDir: mediaDir,
	}
}

// MediaPath returns the cached GIF location for a notification identifier
func (l *LedgerRepo) MediaPath(identifier string) string {
	return filepath.Join(l.mediaDir, identifier+".gif")
}

// Load returns all recorded notifications
func (l *LedgerRepo) Load() []model.SentNotification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// HasSent reports whether a notification for the same report, type and
// calendar day has already been recorded.
func (l *LedgerRepo) HasSent(notification model.SentNotification, cal model.Calendar) bool {
	for _, sent := range l.Load() {
		if sent.ReportIdentifier == notification.ReportIdentifier &&
			sent.Type == notification.Type &&
			cal.SameDay(sent.SendAt, notification.SendAt) {
			return true
		}
	}
	return false
}

// Add appends a notification to the ledger
func (l *LedgerRepo) Add(notification model.SentNotification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sent := l.read()
	sent = append(sent, notification)
	l.write(sent)
}

// Purge drops every entry sent strictly before the start of today and
// removes its cached media file. Entries from today, and any future dated
// ones, are retained.
func (l *LedgerRepo) Purge(cal model.Calendar) {
	l.mu.Lock()
	defer l.mu.Unlock()

	startOfToday := cal.StartOfDay(cal.Now())

	oldValue := l.read()
	newValue := make([]model.SentNotification, 0, len(oldValue))
	for _, notification := range oldValue {
		if !notification.SendAt.Before(startOfToday) {
			newValue = append(newValue, notification)
			continue
		}

		utils.LedgerEntriesPurged.Inc()
		mediaPath := l.MediaPath(notification.Identifier)
		if _, err := os.Stat(mediaPath); err == nil {
			if err := os.Remove(mediaPath); err != nil {
				log.Printf("WARN: [Ledger] Failed to remove cached media %s: %v", mediaPath, err)
			}
		}
	}

	if len(newValue) != len(oldValue) {
		l.write(newValue)
	}
}

// helper functions

func (l *LedgerRepo) read() []model.SentNotification {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.SentNotification{}
	}
	if err != nil {
		log.Printf("WARN: [Ledger] Failed to read %s, treating as empty: %v", l.path, err)
		utils.TrackError("persistence", "ledger_read_failed")
		return []model.SentNotification{}
	}

	var sent []model.SentNotification
	if err := json.Unmarshal(data, &sent); err != nil {
		log.Printf("WARN: [Ledger] Failed to decode %s, treating as empty: %v", l.path, err)
		utils.TrackError("persistence", "ledger_decode_failed")
		return []model.SentNotification{}
	}
	return sent
}

func (l *LedgerRepo) write(sent []model.SentNotification) {
	data, err := json.MarshalIndent(sent, "", "  ")
	if err != nil {
		log.Printf("ERROR: [Ledger] Failed to encode ledger: %v", err)
		utils.TrackError("persistence", "ledger_encode_failed")
		return
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		log.Printf("ERROR: [Ledger] Failed to write %s: %v", l.path, err)
		utils.TrackError("persistence", "ledger_write_failed")
	}
}
