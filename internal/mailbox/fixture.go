package mailbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// FixtureClient serves canned messages from a JSON file instead of a live
// inbox. Dev mode and tests use it; marking a message read only updates the
// in-memory processed set, so Reset makes every message unread again.
type FixtureClient struct {
	Path string

	mu        sync.Mutex
	processed map[string]struct{}
}

var _ Client = (*FixtureClient)(nil)

type fixtureMessage struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}

func NewFixtureClient(path string) *FixtureClient {
	return &FixtureClient{
		Path:      path,
		processed: make(map[string]struct{}),
	}
}

func (c *FixtureClient) FetchUnread(_ context.Context, sender string) ([]Message, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[mailbox] fixture file not found: %s", c.Path)
			return []Message{}, nil
		}
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	var all []fixtureMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("parse fixture file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, 0, len(all))
	for _, fm := range all {
		if sender != "" && !strings.Contains(strings.ToLower(fm.From), strings.ToLower(sender)) {
			continue
		}
		if _, done := c.processed[fm.ID]; done {
			continue
		}

		date, _ := time.Parse(time.RFC1123Z, fm.Date)
		out = append(out, Message{
			ID:       fm.ID,
			From:     fm.From,
			Subject:  fm.Subject,
			Date:     date,
			BodyHTML: fm.Body,
		})
	}
	return out, nil
}

func (c *FixtureClient) MarkRead(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed[id] = struct{}{}
	return nil
}

// Reset marks every fixture message unread again, for repeated dev runs.
func (c *FixtureClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed = make(map[string]struct{})
}
