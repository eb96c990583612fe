package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// workdayShard matches the wd3/wd5-style shard labels in Workday hostnames.
var workdayShard = regexp.MustCompile(`^wd\d+$`)

// boilerplatePhrases mark text that came from a consent banner rather than the
// posting itself.
var boilerplatePhrases = []string{
	"we use cookies",
	"this website uses cookies",
	"accept all cookies",
	"accept cookies",
	"cookie policy",
	"cookie settings",
	"gdpr",
	"your privacy choices",
	"manage consent",
}

func looksLikeBoilerplate(text string) bool {
	low := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(low, phrase) {
			return true
		}
	}
	return false
}

// cleanText collapses all whitespace runs (spaces, newlines, tabs, nbsp) to
// single spaces, trims, and truncates to limit runes.
func cleanText(s string, limit int) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	if limit > 0 {
		if r := []rune(s); len(r) > limit {
			s = string(r[:limit])
		}
	}
	return s
}

// genericTitles are <title> segments that name the site, not the role.
var genericTitles = map[string]bool{
	"home":     true,
	"jobs":     true,
	"job":      true,
	"careers":  true,
	"career":   true,
	"apply":    true,
	"welcome":  true,
	"login":    true,
	"search":   true,
	"openings": true,
}

// titleFromDocumentTitle falls back to the page <title>, split on the common
// "Role | Company" separators, keeping the first segment.
func titleFromDocumentTitle(doc *goquery.Document) string {
	raw := cleanText(doc.Find("title").First().Text(), maxTitleLen)
	if raw == "" {
		return ""
	}

	first := raw
	for _, sep := range []string{"|", "–", " - "} {
		if i := strings.Index(first, sep); i >= 0 {
			first = first[:i]
		}
	}
	first = strings.TrimSpace(first)

	if first == "" || genericTitles[strings.ToLower(first)] {
		return ""
	}
	if looksLikeBoilerplate(first) {
		return ""
	}
	return first
}

// jobBoardDomains host ATS pages where the registrable domain names the board,
// not the employer.
var jobBoardDomains = []string{
	"greenhouse.io",
	"lever.co",
	"myworkdayjobs.com",
	"workday.com",
	"smartrecruiters.com",
	"icims.com",
	"ashbyhq.com",
	"jobvite.com",
	"breezy.hr",
	"applytojob.com",
}

var skipHostLabels = map[string]bool{
	"www":     true,
	"boards":  true,
	"jobs":    true,
	"careers": true,
	"apply":   true,
}

// companyFromURL guesses the employer from the page URL. On an employer's own
// domain the second-to-last DNS label is the company; on a known job board the
// first URL path segment (or the first non-board subdomain label) is.
func companyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))

	for _, board := range jobBoardDomains {
		if host != board && !strings.HasSuffix(host, "."+board) {
			continue
		}
		// boards.greenhouse.io/acme -> acme
		for _, seg := range strings.Split(u.Path, "/") {
			seg = strings.TrimSpace(seg)
			if seg != "" && !skipHostLabels[strings.ToLower(seg)] {
				return seg
			}
		}
		// acme.wd3.myworkdayjobs.com -> acme
		sub := strings.TrimSuffix(host, board)
		sub = strings.TrimSuffix(sub, ".")
		for _, label := range strings.Split(sub, ".") {
			if label != "" && !skipHostLabels[label] && !workdayShard.MatchString(label) {
				return label
			}
		}
		return ""
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return parts[0]
}
