package mailbox

import (
	"context"
	"testing"
	"time"
)

type signalCloser struct {
	closed chan struct{}
}

func (c *signalCloser) Close() error {
	close(c.closed)
	return nil
}

func TestCloseOnDoneReleasesWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	conn := &signalCloser{closed: make(chan struct{})}
	closeOnDone(ctx, conn)

	select {
	case <-conn.closed:
		t.Fatal("connection closed before the context ended")
	case <-time.After(20 * time.Millisecond):
	}

	// Each call derives and cancels its own context, so cancelling here is
	// what FetchUnread and MarkRead do on return.
	cancel()
	select {
	case <-conn.closed:
	case <-time.After(time.Second):
		t.Fatal("watcher did not close the connection after cancel")
	}
}
