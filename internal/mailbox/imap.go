package mailbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net/mail"
	"strconv"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPClient implements Client against a live IMAP mailbox. Each FetchUnread
// dials, searches, and logs out; job-alert polling is infrequent enough that
// a persistent connection isn't worth keeping alive.
type IMAPClient struct {
	Addr     string // host:port, 993 assumed when the port is missing
	Username string
	Password string
	Mailbox  string // defaults to INBOX
	MaxFetch int    // defaults to 20
}

var _ Client = (*IMAPClient)(nil)

func (c *IMAPClient) FetchUnread(ctx context.Context, sender string) ([]Message, error) {
	// The connection watcher lives until this context ends; derive one so
	// the watcher exits when the call returns instead of outliving a
	// long-lived caller.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(conn)

	mbox := c.Mailbox
	if mbox == "" {
		mbox = "INBOX"
	}
	if _, err := conn.Select(mbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %q: %w", mbox, err)
	}

	max := c.MaxFetch
	if max <= 0 {
		max = 20
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	if sender != "" {
		criteria.Header = []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: sender},
		}
	}

	searchData, err := conn.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []Message{}, nil
	}
	if len(uids) > max {
		uids = uids[:max]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true, // don't set \Seen as a fetch side effect
	}
	fetchCmd := conn.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:          true,
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	out := make([]Message, 0, len(uids))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		var m Message
		m.ID = strconv.FormatUint(uint64(buf.UID), 10)
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
			m.From = joinAddrs(buf.Envelope.From)
			m.To = joinAddrs(buf.Envelope.To)
		}

		if raw := buf.FindBodySection(bodyAll); raw != nil {
			plain, html := bodyParts(raw)
			// Alert tables only survive in the HTML part; plain text is the
			// last resort.
			if html != "" {
				m.BodyHTML = html
			} else {
				m.BodyHTML = plain
			}
			fillHeaderFallbacks(&m, raw)
		}

		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}
	return out, nil
}

func (c *IMAPClient) MarkRead(ctx context.Context, id string) error {
	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("imap mark read: bad uid %q", id)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer logoutAndClose(conn)

	mbox := c.Mailbox
	if mbox == "" {
		mbox = "INBOX"
	}
	if _, err := conn.Select(mbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return fmt.Errorf("imap select %q: %w", mbox, err)
	}

	cmd := conn.Store(imap.UIDSetNum(imap.UID(uid)), &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap store add seen: %w", err)
	}
	return nil
}

func (c *IMAPClient) dial(ctx context.Context) (*imapclient.Client, error) {
	if c.Addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if c.Username == "" || c.Password == "" {
		return nil, errors.New("imap username/password is required")
	}

	addr := c.Addr
	if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	conn, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	closeOnDone(ctx, conn)

	if err := conn.Login(c.Username, c.Password).Wait(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return conn, nil
}

// closeOnDone force-closes c once ctx ends, unblocking reads stuck on a dead
// peer. Callers must cancel ctx when they are done with c or the watcher
// goroutine leaks.
func closeOnDone(ctx context.Context, c io.Closer) {
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()
}

func logoutAndClose(conn *imapclient.Client) {
	if conn == nil {
		return
	}
	if err := conn.Logout().Wait(); err != nil {
		log.Printf("[mailbox] imap logout: %v", err)
	}
	_ = conn.Close()
}

func joinAddrs(addrs []imap.Address) string {
	parts := make([]string, 0, len(addrs))
	for i := range addrs {
		a := &addrs[i]
		addr := strings.TrimSpace(a.Addr())
		if addr == "" {
			addr = strings.TrimSpace(a.Name)
		}
		if addr != "" {
			parts = append(parts, addr)
		}
	}
	return strings.Join(parts, ", ")
}

// fillHeaderFallbacks patches envelope gaps from the raw headers. Not a full
// RFC2047 treatment, just a safety net.
func fillHeaderFallbacks(m *Message, raw []byte) {
	if m.Subject != "" && m.From != "" && !m.Date.IsZero() {
		return
	}
	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		return
	}
	h := parsed.Header
	if m.Subject == "" {
		m.Subject = h.Get("Subject")
	}
	if m.From == "" {
		m.From = h.Get("From")
	}
	if m.To == "" {
		m.To = h.Get("To")
	}
	if m.Date.IsZero() {
		if t, err := mail.ParseDate(h.Get("Date")); err == nil {
			m.Date = t
		}
	}
}
