package extract

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// dateMetaSelectors are checked in priority order; the first parseable value
// wins.
var dateMetaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="date"]`,
	`meta[property="og:updated_time"]`,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"January 2, 2006",
	"Jan 2, 2006",
}

var labeledDate = regexp.MustCompile(`(?i)(?:Posted|Date):?\s*(\d{1,2}/\d{1,2}/\d{2,4})`)

var slashLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"01/02/2006",
}

// postedDate resolves the posting date: meta tags first, then a labeled date
// in the body text, and failing both the current time. Never zero.
func postedDate(doc *goquery.Document, bodyText string) time.Time {
	for _, sel := range dateMetaSelectors {
		content, ok := doc.Find(sel).First().Attr("content")
		if !ok || content == "" {
			continue
		}
		if t, ok := parseAny(content, dateLayouts); ok {
			return t
		}
	}

	if m := labeledDate.FindStringSubmatch(bodyText); m != nil {
		if t, ok := parseAny(m[1], slashLayouts); ok {
			return t
		}
	}

	return time.Now()
}

func parseAny(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
