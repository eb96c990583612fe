package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// questionable about it. Defaults are filled here so the rest of the program
// never sees a zero interval.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Mail.Sender = strings.TrimSpace(out.Mail.Sender)
	out.Mail.Username = strings.TrimSpace(out.Mail.Username)
	out.Mail.Mailbox = strings.TrimSpace(out.Mail.Mailbox)
	if out.Mail.Mailbox == "" {
		out.Mail.Mailbox = "INBOX"
	}
	if out.Mail.MaxFetch <= 0 {
		out.Mail.MaxFetch = 10
	}

	if out.Scrape.CooldownSeconds < 0 {
		res.addErr("scrape.cooldown_seconds must be >= 0")
	}
	if out.Scrape.TimeoutSeconds <= 0 {
		out.Scrape.TimeoutSeconds = 30
	}
	if out.Scrape.HostReqPerSec <= 0 {
		out.Scrape.HostReqPerSec = 1
	}
	if out.Scrape.HostBurst <= 0 {
		out.Scrape.HostBurst = 2
	}

	if out.Posting.IntervalSeconds <= 0 {
		res.addErr("posting.interval_seconds must be > 0")
	} else if out.Posting.IntervalSeconds < 10 {
		res.addWarn("posting.interval_seconds is very low (%d) and may trip webhook rate limits.", out.Posting.IntervalSeconds)
	}
	if out.Posting.BatchLimit <= 0 {
		out.Posting.BatchLimit = 5
	}
	if out.Posting.SendDelayMS < 0 {
		res.addErr("posting.send_delay_ms must be >= 0")
	}

	if out.Polling.MailSeconds <= 0 {
		res.addErr("polling.mail_seconds must be > 0")
	} else if out.Polling.MailSeconds < 30 {
		res.addWarn("polling.mail_seconds is very low (%d); IMAP providers may throttle.", out.Polling.MailSeconds)
	}

	if out.Mail.Enabled {
		if strings.TrimSpace(out.Mail.IMAPHost) == "" {
			res.addErr("mail.imap_host is required when mail.enabled=true")
		}
		if out.Mail.IMAPPort == 0 {
			res.addErr("mail.imap_port is required when mail.enabled=true")
		}
		if out.Mail.Username == "" {
			res.addErr("mail.username is required when mail.enabled=true")
		}
		if out.Mail.Sender == "" {
			res.addWarn("mail.sender is empty; every unread message will be treated as a job alert.")
		}
	}
	if out.Mail.Enabled && out.Mail.Fixture != "" {
		res.addWarn("mail.enabled and mail.fixture are both set; the fixture inbox wins.")
	}

	return out, res
}
