// Package mailbox fetches job-alert emails and unmarshals their posting
// tables.
package mailbox

import (
	"context"
	"time"
)

// Message is a minimal representation of one email for the pipeline. BodyHTML
// is the HTML part when the message has one, otherwise the plain-text part.
type Message struct {
	ID       string
	From     string
	To       string
	Subject  string
	Date     time.Time
	BodyHTML string
}

// Client is the mail-inbox collaborator. FetchUnread returns unread messages
// from the given sender; MarkRead flips the read state so a later run does not
// reprocess the message.
type Client interface {
	FetchUnread(ctx context.Context, sender string) ([]Message, error)
	MarkRead(ctx context.Context, id string) error
}
