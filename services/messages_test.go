package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"main/model"
)

func TestMessageStoreDefaults(t *testing.T) {
	store := NewMessageStore()

	types := []model.NotificationType{
		model.NotificationBehindSchedule,
		model.NotificationOnSchedule,
		model.NotificationBeforeSchedule,
		model.NotificationSuccess,
	}

	for _, notificationType := range types {
		for _, key := range []MessageKey{MessageKeyTitle, MessageKeyBody} {
			if store.Random(notificationType, key) == "" {
				t.Errorf("no default %s message for %s", key, notificationType)
			}
		}
	}
}

func TestMessageStoreRandomf(t *testing.T) {
	store := NewMessageStore()

	message := store.Randomf(model.NotificationBehindSchedule, MessageKeyTitle, "Gym")
	if !strings.Contains(message, "Gym") {
		t.Errorf("Randomf should interpolate the report title, got %q", message)
	}
	if strings.Contains(message, "%s") {
		t.Errorf("template placeholder left unfilled: %q", message)
	}
}

func TestLoadMessageStore(t *testing.T) {
	t.Run("overlay file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.json")
		content := `{"behindSchedule":{"title":["Custom %s title"],"body":["Custom %s body"]}}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		store := LoadMessageStore(path)
		if got := store.Random(model.NotificationBehindSchedule, MessageKeyTitle); got != "Custom %s title" {
			t.Errorf("Random = %q, want the overlay message", got)
		}
	})

	t.Run("missing file falls back", func(t *testing.T) {
		store := LoadMessageStore(filepath.Join(t.TempDir(), "nope.json"))
		if store.Random(model.NotificationSuccess, MessageKeyBody) == "" {
			t.Error("missing overlay should fall back to defaults")
		}
	})

	t.Run("broken file falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.json")
		if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		store := LoadMessageStore(path)
		if store.Random(model.NotificationSuccess, MessageKeyBody) == "" {
			t.Error("broken overlay should fall back to defaults")
		}
	})
}
