// Package job defines the canonical job-posting record that flows between the
// scrape pipeline, the store, and the publisher.
package job

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPosting Status = "posting"
	StatusPosted  Status = "posted"
)

// Record is the canonical job posting. Once constructed it is treated as
// immutable; status transitions happen at the store layer.
type Record struct {
	ID             string
	URL            string
	Title          string
	Company        string
	Location       string
	Description    string
	Qualifications string
	Skills         []string
	PostedDate     time.Time
	Status         Status
	CreatedAt      time.Time
	PostedAt       *time.Time
	EmailSubject   string
	EmailDate      string
}

// Scraped is the partial shape produced by the field extractor.
type Scraped struct {
	URL            string
	Title          string
	Company        string
	Location       string
	Description    string
	Qualifications string
	Skills         []string
	PostedDate     time.Time
}

// Source is the possibly-partial input a Record is built from. Scraped (when
// non-nil) is the inner shape; the remaining fields come from the email side.
type Source struct {
	Scraped      *Scraped
	CompanyName  string
	JobTitle     string
	ApplyLink    string
	Status       Status
	CreatedAt    time.Time
	EmailSubject string
	EmailDate    string
}

// New builds a Record from a nested-or-flat source. Scraped values win for the
// scraped fields, but title and company always come from the email side when
// present, and the apply link only fills URL when the scraped URL is absent.
// Every field has a default; construction cannot fail.
func New(src Source) Record {
	now := time.Now()

	var inner Scraped
	if src.Scraped != nil {
		inner = *src.Scraped
	}

	r := Record{
		URL:            inner.URL,
		Title:          src.JobTitle,
		Company:        src.CompanyName,
		Location:       inner.Location,
		Description:    inner.Description,
		Qualifications: inner.Qualifications,
		Skills:         inner.Skills,
		PostedDate:     inner.PostedDate,
		Status:         src.Status,
		CreatedAt:      src.CreatedAt,
		EmailSubject:   src.EmailSubject,
		EmailDate:      src.EmailDate,
	}

	if r.URL == "" {
		r.URL = src.ApplyLink
	}
	if r.Title == "" {
		r.Title = inner.Title
	}
	if r.Company == "" {
		r.Company = inner.Company
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.PostedDate.IsZero() {
		r.PostedDate = now
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}

	return r
}

// Fields returns the flat persistable map for the store. Skills are JSON so
// the value survives a round trip through a TEXT column.
func (r Record) Fields() map[string]any {
	skillsB, _ := json.Marshal(r.Skills)

	postedAt := ""
	if r.PostedAt != nil {
		postedAt = r.PostedAt.UTC().Format(time.RFC3339)
	}

	return map[string]any{
		"url":            r.URL,
		"title":          r.Title,
		"company":        r.Company,
		"location":       r.Location,
		"description":    r.Description,
		"qualifications": r.Qualifications,
		"skills":         string(skillsB),
		"posted_date":    r.PostedDate.UTC().Format(time.RFC3339),
		"status":         string(r.Status),
		"created_at":     r.CreatedAt.UTC().Format(time.RFC3339),
		"posted_at":      postedAt,
		"email_subject":  r.EmailSubject,
		"email_date":     r.EmailDate,
	}
}

// FromFields rehydrates a Record from a persisted row. Bad or missing
// timestamps fall back the same way construction does.
func FromFields(id string, f map[string]string) Record {
	now := time.Now()

	var skills []string
	if raw := f["skills"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &skills)
	}
	if skills == nil {
		skills = []string{}
	}

	parseTime := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return now
		}
		return t
	}

	var postedAt *time.Time
	if s := f["posted_at"]; s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			postedAt = &t
		}
	}

	status := Status(f["status"])
	if status == "" {
		status = StatusPending
	}

	return Record{
		ID:             id,
		URL:            f["url"],
		Title:          f["title"],
		Company:        f["company"],
		Location:       f["location"],
		Description:    f["description"],
		Qualifications: f["qualifications"],
		Skills:         skills,
		PostedDate:     parseTime(f["posted_date"]),
		Status:         status,
		CreatedAt:      parseTime(f["created_at"]),
		PostedAt:       postedAt,
		EmailSubject:   f["email_subject"],
		EmailDate:      f["email_date"],
	}
}
