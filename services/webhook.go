package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotificationRequest is a single notification handed to a notification
// center for immediate delivery.
type NotificationRequest struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Sound      string `json:"sound,omitempty"`
	GifURL     string `json:"gif_url,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

// NotificationCenter dispatches user notifications. Authorization is
// requested separately from sending.
type NotificationCenter interface {
	RequestAuthorization(ctx context.Context) error
	Send(ctx context.Context, request *NotificationRequest) error
}

// WebhookNotificationCenter delivers notifications by POSTing them to a
// configured webhook endpoint.
type WebhookNotificationCenter struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookNotificationCenter(webhookURL string) *WebhookNotificationCenter {
	return &WebhookNotificationCenter{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// RequestAuthorization probes the webhook endpoint
func (w *WebhookNotificationCenter) RequestAuthorization(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.webhookURL, nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Send delivers a single notification
func (w *WebhookNotificationCenter) Send(ctx context.Context, request *NotificationRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
