// Package profile maps job-page URLs to per-site extraction profiles.
//
// Each profile bundles the CSS selectors for one job-board template family
// plus an optional wait-for selector that gates extraction until the page's
// dynamic content has rendered. The registry is a fixed ordered list; Classify
// returns the first profile whose predicate matches, and the generic profile
// matches everything.
package profile

import "regexp"

// Kind names a profile variant. Adding a site means adding a variant and a
// registry entry, nothing else.
type Kind string

const (
	KindWorkday         Kind = "workday"
	KindLever           Kind = "lever"
	KindGreenhouse      Kind = "greenhouse"
	KindSmartRecruiters Kind = "smartrecruiters"
	KindICIMS           Kind = "icims"
	KindGeneric         Kind = "generic"
)

// Field is a logical extraction target within a job page.
type Field string

const (
	FieldTitle          Field = "title"
	FieldCompany        Field = "company"
	FieldLocation       Field = "location"
	FieldQualifications Field = "qualifications"
)

// Profile is an immutable selector bundle for one site family.
type Profile struct {
	Kind      Kind
	pattern   *regexp.Regexp
	Selectors map[Field][]string
	// WaitFor is the selector the renderer should wait on before the page is
	// considered settled. Empty means no wait hint.
	WaitFor string
}

// Match reports whether this profile applies to the given URL. The generic
// profile has a nil pattern and matches any URL.
func (p Profile) Match(url string) bool {
	if p.pattern == nil {
		return true
	}
	return p.pattern.MatchString(url)
}

// registry is consulted in order; generic must stay last.
var registry = []Profile{
	{
		Kind:    KindWorkday,
		pattern: regexp.MustCompile(`(?i)workday|\.wd\d+\.`),
		Selectors: map[Field][]string{
			FieldTitle: {
				`[data-automation-id="jobPostingHeader"] h2`,
				`[data-automation-id="jobTitle"]`,
				`.css-1q2dra3`,
			},
			FieldCompany: {
				`[data-automation-id="company"]`,
				`[data-automation-id="organizationName"]`,
			},
			FieldLocation: {
				`[data-automation-id="locations"]`,
				`[data-automation-id="location"]`,
			},
			FieldQualifications: {
				`[data-automation-id="jobPostingQualifications"]`,
			},
		},
		WaitFor: `[data-automation-id="jobPostingHeader"]`,
	},
	{
		Kind:    KindLever,
		pattern: regexp.MustCompile(`(?i)lever\.co`),
		Selectors: map[Field][]string{
			FieldTitle:          {`.posting-headline h2`, `.posting-title`},
			FieldCompany:        {`.main-header-logo img[alt]`, `.company-name`},
			FieldLocation:       {`.posting-categories .location`, `.workplaceTypes`},
			FieldQualifications: {`.posting-page .section-wrapper`},
		},
		WaitFor: `.posting-headline`,
	},
	{
		Kind:    KindGreenhouse,
		pattern: regexp.MustCompile(`(?i)greenhouse\.io`),
		Selectors: map[Field][]string{
			FieldTitle:          {`.app-title`, `#header .job-title`, `h1.job-title`},
			FieldCompany:        {`.company-name`, `#header .company-name`},
			FieldLocation:       {`.location`, `.job-info .location`},
			FieldQualifications: {`#content .section-wrapper`},
		},
		WaitFor: `.app-title, #header`,
	},
	{
		Kind:    KindSmartRecruiters,
		pattern: regexp.MustCompile(`(?i)smartrecruiters\.com`),
		Selectors: map[Field][]string{
			FieldTitle:          {`h1.job-title`, `.job-title`},
			FieldCompany:        {`.company-name`, `[itemprop="hiringOrganization"]`},
			FieldLocation:       {`[itemprop="jobLocation"]`, `.job-location`},
			FieldQualifications: {`[itemprop="qualifications"]`, `#st-qualifications`},
		},
		WaitFor: `h1.job-title`,
	},
	{
		Kind:    KindICIMS,
		pattern: regexp.MustCompile(`(?i)icims\.com`),
		Selectors: map[Field][]string{
			FieldTitle:          {`.iCIMS_Header h1`, `h1.iCIMS_InfoMsg_Job`},
			FieldCompany:        {`.iCIMS_CompanyName`},
			FieldLocation:       {`.iCIMS_JobHeaderTag`, `span.jobLocation`},
			FieldQualifications: {`.iCIMS_InfoMsg_Job`},
		},
		WaitFor: `.iCIMS_Header`,
	},
	{
		Kind:    KindGeneric,
		pattern: nil,
		Selectors: map[Field][]string{
			FieldTitle: {
				`h1:not([class*="cookie"]):not([class*="consent"]):not([class*="banner"])`,
				`[class*="job-title"]`,
				`[class*="jobTitle"]`,
			},
			FieldCompany:        {`[class*="company"]`, `[class*="employer"]`},
			FieldLocation:       {`[class*="location"]`},
			FieldQualifications: {`[class*="requirements"]`, `[class*="qualifications"]`},
		},
		WaitFor: "",
	},
}

// Classify returns the first registry profile matching url. The same URL
// always yields the same profile.
func Classify(url string) Profile {
	for _, p := range registry {
		if p.Match(url) {
			return p
		}
	}
	// Unreachable while generic stays last, but keep the fallback explicit.
	return registry[len(registry)-1]
}
