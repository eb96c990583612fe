package mailbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample-emails.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const fixtureJSON = `[
  {"id":"m1","from":"no-reply@notify.careers","subject":"New Job Alerts",
   "date":"Mon, 02 Mar 2026 09:00:00 -0500","body":"<table></table>"},
  {"id":"m2","from":"someone@else.example","subject":"Hello","body":"<p>hi</p>"}
]`

func TestFixtureClient_SenderFilterAndMarkRead(t *testing.T) {
	c := NewFixtureClient(writeFixture(t, fixtureJSON))
	ctx := context.Background()

	msgs, err := c.FetchUnread(ctx, "no-reply@notify.careers")
	if err != nil {
		t.Fatalf("FetchUnread() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m1" {
		t.Fatalf("FetchUnread() = %+v, want only m1", msgs)
	}

	if err := c.MarkRead(ctx, "m1"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	msgs, err = c.FetchUnread(ctx, "no-reply@notify.careers")
	if err != nil {
		t.Fatalf("FetchUnread() after MarkRead error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("read message returned again: %+v", msgs)
	}

	c.Reset()
	msgs, _ = c.FetchUnread(ctx, "no-reply@notify.careers")
	if len(msgs) != 1 {
		t.Errorf("after Reset() got %d messages, want 1", len(msgs))
	}
}

func TestFixtureClient_MissingFileIsEmptyInbox(t *testing.T) {
	c := NewFixtureClient(filepath.Join(t.TempDir(), "nope.json"))
	msgs, err := c.FetchUnread(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchUnread() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages from missing file", len(msgs))
	}
}
