package mailbox

import (
	"strings"
	"testing"
)

func TestBodyParts_PrefersHTMLPart(t *testing.T) {
	raw := strings.Join([]string{
		"From: no-reply@notify.careers",
		"Subject: New Job Alerts",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"plain fallback",
		"--b1",
		"Content-Type: text/html",
		"",
		"<table><tr><td>Acme</td></tr></table>",
		"--b1--",
		"",
	}, "\r\n")

	plain, html := bodyParts([]byte(raw))
	if !strings.Contains(html, "<table>") {
		t.Errorf("html part = %q, want the table markup", html)
	}
	if !strings.Contains(plain, "plain fallback") {
		t.Errorf("plain part = %q", plain)
	}
}

func TestBodyParts_QuotedPrintableSinglePart(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@b.c",
		"Content-Type: text/html",
		"Content-Transfer-Encoding: quoted-printable",
		"",
		"<p>caf=C3=A9</p>",
		"",
	}, "\r\n")

	_, html := bodyParts([]byte(raw))
	if !strings.Contains(html, "café") {
		t.Errorf("html = %q, want decoded quoted-printable", html)
	}
}
