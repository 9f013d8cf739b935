package model

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NotificationType reflects the tone of a progress notification
type NotificationType string

const (
	NotificationBehindSchedule NotificationType = "behindSchedule"
	NotificationOnSchedule     NotificationType = "onSchedule"
	NotificationBeforeSchedule NotificationType = "beforeSchedule"
	NotificationSuccess        NotificationType = "success"
)

// AvailableTerms returns the GIF search keywords matching the tone of the
// notification type.
func (t NotificationType) AvailableTerms() []string {
	switch t {
	case NotificationBehindSchedule:
		return []string{"lazy", "epic+fail"}
	case NotificationOnSchedule:
		return []string{"okay"}
	case NotificationBeforeSchedule:
		return []string{"good job"}
	case NotificationSuccess:
		return []string{"celebrate", "like a boss"}
	}
	return nil
}

// RandomTerm picks one of the available search terms at random
func (t NotificationType) RandomTerm() string {
	terms := t.AvailableTerms()
	if len(terms) == 0 {
		return ""
	}
	return terms[rand.Intn(len(terms))]
}

// SentNotification is a ledger entry recording an already dispatched
// notification. Entries dedupe on (report identifier, type, calendar day);
// Identifier is unique per entry and doubles as the cached GIF filename.
type SentNotification struct {
	ReportIdentifier string           `json:"report_identifier"`
	Type             NotificationType `json:"type"`
	SendAt           time.Time        `json:"send_at"`
	Identifier       string           `json:"identifier"`
}

func NewSentNotification(reportIdentifier string, notificationType NotificationType, sendAt time.Time) SentNotification {
	return SentNotification{
		ReportIdentifier: reportIdentifier,
		Type:             notificationType,
		SendAt:           sendAt,
		Identifier:       uuid.New().String(),
	}
}
