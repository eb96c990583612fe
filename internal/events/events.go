// Package events fans pipeline and publisher happenings out to SSE clients.
package events

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

func Make(typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type: typ,
		At:   time.Now().UTC(),
		Data: raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

type jobPayload struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// JobCreated marks a record landing in the store as pending.
func JobCreated(id, title, company string) string {
	return Make("job_created", jobPayload{ID: id, Title: title, Company: company})
}

// JobPosted marks a record successfully delivered to the chat channel.
func JobPosted(id, title, company string) string {
	return Make("job_posted", jobPayload{ID: id, Title: title, Company: company})
}
