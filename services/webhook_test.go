package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookNotificationCenterSend(t *testing.T) {
	var received NotificationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	center := NewWebhookNotificationCenter(server.URL)
	request := &NotificationRequest{
		ID:       "abc",
		Category: NotificationCategory,
		Title:    "You're falling behind on gym",
		Body:     "Time to catch up!",
		GifURL:   "https://example.com/a.gif",
	}

	if err := center.Send(context.Background(), request); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if received.ID != "abc" || received.Category != NotificationCategory {
		t.Errorf("payload did not round trip: %+v", received)
	}
}

func TestWebhookNotificationCenterSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	center := NewWebhookNotificationCenter(server.URL)
	if err := center.Send(context.Background(), &NotificationRequest{ID: "abc"}); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}

func TestWebhookNotificationCenterRequestAuthorization(t *testing.T) {
	t.Run("reachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead {
				t.Errorf("method = %s, want HEAD", r.Method)
			}
			w.WriteHeader(http.StatusMethodNotAllowed) // 4xx still counts as reachable
		}))
		defer server.Close()

		center := NewWebhookNotificationCenter(server.URL)
		if err := center.RequestAuthorization(context.Background()); err != nil {
			t.Errorf("RequestAuthorization: %v", err)
		}
	})

	t.Run("broken endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		center := NewWebhookNotificationCenter(server.URL)
		if err := center.RequestAuthorization(context.Background()); err == nil {
			t.Error("expected an error for a 5xx response")
		}
	})
}
