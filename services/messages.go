package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"

	"main/model"
)

type MessageKey string

const (
	MessageKeyTitle MessageKey = "title"
	MessageKeyBody  MessageKey = "body"
)

// MessageStore provides the localized notification message pools, keyed by
// notification type and message key. Templates take the report title as a
// single %s argument.
type MessageStore struct {
	messages map[string]map[string][]string
}

// NewMessageStore builds a message store with the built-in message pools
func NewMessageStore() *MessageStore {
	return &MessageStore{messages: defaultMessages()}
}

// LoadMessageStore reads the message pools from a JSON file, falling back to
// the built-in defaults when the file is missing or broken.
func LoadMessageStore(path string) *MessageStore {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: [MessageStore] Failed to read %s, using defaults: %v", path, err)
		}
		return NewMessageStore()
	}

	var messages map[string]map[string][]string
	if err := json.Unmarshal(data, &messages); err != nil {
		log.Printf("WARN: [MessageStore] Failed to decode %s, using defaults: %v", path, err)
		return NewMessageStore()
	}
	return &MessageStore{messages: messages}
}

// Random picks a random template for the given type and key, or "" when the
// pool is empty.
func (s *MessageStore) Random(notificationType model.NotificationType, key MessageKey) string {
	pool := s.messages[string(notificationType)][string(key)]
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}

// Randomf picks a random template and fills in the arguments
func (s *MessageStore) Randomf(notificationType model.NotificationType, key MessageKey, args ...interface{}) string {
	message := s.Random(notificationType, key)
	if message == "" {
		return ""
	}
	return fmt.Sprintf(message, args...)
}

func defaultMessages() map[string]map[string][]string {
	return map[string]map[string][]string{
		string(model.NotificationBehindSchedule): {
			string(MessageKeyTitle): {
				"You're falling behind on %s",
				"%s needs your attention",
			},
			string(MessageKeyBody): {
				"Your progress on %s is behind schedule. Time to catch up!",
				"Less scrolling, more doing. %s won't finish itself.",
			},
		},
		string(model.NotificationOnSchedule): {
			string(MessageKeyTitle): {
				"%s is on track",
				"Steady progress on %s",
			},
			string(MessageKeyBody): {
				"You're right on schedule with %s. Keep it up!",
				"%s is moving along nicely. Stay the course.",
			},
		},
		string(model.NotificationBeforeSchedule): {
			string(MessageKeyTitle): {
				"You're ahead on %s",
				"Great pace on %s",
			},
			string(MessageKeyBody): {
				"You're ahead of schedule on %s. This one's in the bag.",
				"%s is going better than planned. Well done!",
			},
		},
		string(model.NotificationSuccess): {
			string(MessageKeyTitle): {
				"%s: done!",
				"Goal reached for %s",
			},
			string(MessageKeyBody): {
				"You completed your goal for %s. Time to celebrate!",
				"That's a wrap on %s. Outstanding work!",
			},
		},
	}
}
