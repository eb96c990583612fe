package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var descriptionSelectors = []string{
	`[class*="description"]`,
	`[class*="job-description"]`,
	`[class*="content"]`,
	`[class*="summary"]`,
	`article`,
	`main`,
}

var (
	overviewSection         = sectionPattern(`OVERVIEW|ABOUT|DESCRIPTION`)
	responsibilitiesSection = sectionPattern(`RESPONSIBILITIES|DUTIES|ACCOUNTABILITIES`)
	qualificationsSection   = sectionPattern(`QUALIFICATIONS|REQUIREMENTS|REQUIRED|MUST HAVE`)
)

// sectionPattern captures text between an ALL-CAPS heading and the next one.
func sectionPattern(headings string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(` + headings + `)([\s\S]*?)(?:\n[A-Z][A-Z\s]+:|$)`)
}

func extractSection(re *regexp.Regexp, bodyText string) string {
	m := re.FindStringSubmatch(bodyText)
	if m == nil {
		return ""
	}
	return cleanText(m[2], maxQualificationsLen)
}

func buildDescription(doc *goquery.Document, bodyText string) string {
	for _, sel := range descriptionSelectors {
		if elem := doc.Find(sel); elem.Length() > 0 {
			if text := cleanText(elem.First().Text(), maxDescriptionLen); text != "" {
				return text
			}
		}
	}

	parts := []string{
		extractSection(overviewSection, bodyText),
		extractSection(responsibilitiesSection, bodyText),
	}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return cleanText(strings.Join(kept, " "), maxDescriptionLen)
}

// qualificationsFallback runs after the profile selectors are exhausted: a
// heading-delimited section scan first, then any list that talks about
// qualifications or requirements.
func qualificationsFallback(doc *goquery.Document, bodyText string) string {
	if text := extractSection(qualificationsSection, bodyText); text != "" {
		return text
	}

	var items []string
	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		low := strings.ToLower(list.Text())
		if !strings.Contains(low, "qualif") && !strings.Contains(low, "require") &&
			!strings.Contains(low, "experience") {
			return true
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := cleanText(li.Text(), 0); text != "" {
				items = append(items, text)
			}
		})
		return false
	})
	return cleanText(strings.Join(items, " • "), maxQualificationsLen)
}
