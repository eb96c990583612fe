package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// Sender delivers one message to the channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WebhookSender posts JSON to an incoming-webhook URL. A 429 is retried once
// after honoring Retry-After.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

var _ Sender = (*WebhookSender)(nil)

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	resp, err := w.post(ctx, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		if secs <= 0 {
			secs = 1
		}
		log.Printf("[publish] webhook rate limited, retrying in %ds", secs)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(secs) * time.Second):
		}

		retry, err := w.post(ctx, body)
		if err != nil {
			return fmt.Errorf("webhook retry: %w", err)
		}
		defer retry.Body.Close()
		if retry.StatusCode >= 300 {
			return fmt.Errorf("webhook returned %d on retry", retry.StatusCode)
		}
		return nil
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

func (w *WebhookSender) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post to webhook: %w", err)
	}
	return resp, nil
}
