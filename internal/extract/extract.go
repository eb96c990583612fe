// Package extract turns raw job-page markup into a normalized scrape result.
//
// Extraction is a layered best-effort pass over arbitrarily shaped third-party
// markup: profile selectors are tried in order, each candidate is rejected if
// it looks like cookie-consent boilerplate, and every field has a final
// heuristic fallback. The fallback chain is the contract; no single selector
// is authoritative.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/andrewwu13/employment-bot/internal/job"
	"github.com/andrewwu13/employment-bot/internal/profile"
	"github.com/andrewwu13/employment-bot/internal/skills"
)

const (
	maxTitleLen          = 500
	maxCompanyLen        = 500
	maxLocationLen       = 500
	maxQualificationsLen = 1500
	maxDescriptionLen    = 2000
	maxSkills            = 10
)

// Page extracts a job record shape from rendered page markup. The returned
// warnings flag quality problems (suspected boilerplate, missing fields) but
// never fail the extraction.
func Page(markup, url string, prof profile.Profile) (job.Scraped, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return job.Scraped{}, nil, err
	}

	pruneCookieBanners(doc)

	title := selectorChain(doc, prof.Selectors[profile.FieldTitle], maxTitleLen)
	if title == "" {
		title = titleFromDocumentTitle(doc)
	}

	company := selectorChain(doc, prof.Selectors[profile.FieldCompany], maxCompanyLen)
	if company == "" {
		company = companyFromURL(url)
	}

	location := selectorChain(doc, prof.Selectors[profile.FieldLocation], maxLocationLen)

	bodyText := doc.Find("body").Text()

	quals := selectorChain(doc, prof.Selectors[profile.FieldQualifications], maxQualificationsLen)
	if quals == "" {
		quals = qualificationsFallback(doc, bodyText)
	}

	scraped := job.Scraped{
		URL:            url,
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    buildDescription(doc, bodyText),
		Qualifications: quals,
		Skills:         capSkills(skills.Extract(bodyText), maxSkills),
		PostedDate:     postedDate(doc, bodyText),
	}

	return scraped, validate(scraped), nil
}

// selectorChain tries each selector in order and accepts the first match whose
// cleaned text is non-empty and not consent boilerplate.
func selectorChain(doc *goquery.Document, selectors []string, limit int) string {
	for _, sel := range selectors {
		text := cleanText(doc.Find(sel).First().Text(), limit)
		if text == "" {
			continue
		}
		if looksLikeBoilerplate(text) {
			continue
		}
		return text
	}
	return ""
}

func pruneCookieBanners(doc *goquery.Document) {
	for _, sel := range cookieDismissSelectors {
		doc.Find(sel).Remove()
	}
}

func capSkills(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

// validate flags quality problems without failing extraction.
func validate(s job.Scraped) []string {
	var warnings []string
	switch {
	case s.Title == "":
		warnings = append(warnings, "missing title")
	case len(s.Title) < 3:
		warnings = append(warnings, "title too short")
	case looksLikeBoilerplate(s.Title):
		warnings = append(warnings, "title looks like cookie boilerplate")
	}
	if s.Location == "" {
		warnings = append(warnings, "missing location")
	}
	return warnings
}
