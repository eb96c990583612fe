package job

import (
	"testing"
	"time"
)

func TestNew_FlatSourceDefaults(t *testing.T) {
	r := New(Source{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		ApplyLink:   "https://a.example/job",
	})

	if r.Skills == nil || len(r.Skills) != 0 {
		t.Errorf("Skills = %v, want empty non-nil slice", r.Skills)
	}
	if r.Qualifications != "" {
		t.Errorf("Qualifications = %q, want empty", r.Qualifications)
	}
	if r.Status != StatusPending {
		t.Errorf("Status = %q, want pending", r.Status)
	}
	if r.PostedDate.IsZero() {
		t.Error("PostedDate is zero, want defaulted to now")
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want defaulted to now")
	}
	if r.URL != "https://a.example/job" {
		t.Errorf("URL = %q, want apply link fallback", r.URL)
	}
	if r.PostedAt != nil {
		t.Errorf("PostedAt = %v, want nil until posted", r.PostedAt)
	}
}

func TestNew_NestedPrecedence(t *testing.T) {
	posted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := New(Source{
		Scraped: &Scraped{
			URL:            "https://careers.acme.example/123",
			Title:          "Scraped Title",
			Company:        "Scraped Co",
			Location:       "Toronto, ON",
			Qualifications: "5 years of Go",
			Skills:         []string{"go", "sql"},
			PostedDate:     posted,
		},
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		ApplyLink:   "https://a.example/job",
	})

	// Scraped values win for scraped fields.
	if r.URL != "https://careers.acme.example/123" {
		t.Errorf("URL = %q, want scraped url over apply link", r.URL)
	}
	if r.Location != "Toronto, ON" {
		t.Errorf("Location = %q", r.Location)
	}
	if !r.PostedDate.Equal(posted) {
		t.Errorf("PostedDate = %v, want %v", r.PostedDate, posted)
	}

	// Email side always wins for title and company.
	if r.Title != "Engineer" {
		t.Errorf("Title = %q, want email title", r.Title)
	}
	if r.Company != "Acme" {
		t.Errorf("Company = %q, want email company", r.Company)
	}
}

func TestNew_ScrapedFillsMissingTitleCompany(t *testing.T) {
	r := New(Source{
		Scraped: &Scraped{Title: "Scraped Title", Company: "Scraped Co"},
	})
	if r.Title != "Scraped Title" || r.Company != "Scraped Co" {
		t.Errorf("got title=%q company=%q, want scraped fallbacks", r.Title, r.Company)
	}
}

func TestFields_RoundTrip(t *testing.T) {
	postedAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	r := New(Source{
		Scraped: &Scraped{
			URL:      "https://b.example/job",
			Location: "Remote",
			Skills:   []string{"python", "react"},
		},
		CompanyName:  "Beta",
		JobTitle:     "Designer",
		EmailSubject: "New Job Alerts",
		EmailDate:    "Mon, 2 Mar 2026 09:00:00 -0500",
	})
	r.PostedAt = &postedAt

	f := r.Fields()

	wantKeys := []string{
		"url", "title", "company", "location", "description", "qualifications",
		"skills", "posted_date", "status", "created_at", "posted_at",
		"email_subject", "email_date",
	}
	if len(f) != len(wantKeys) {
		t.Errorf("Fields() has %d keys, want %d (no extra fields leaked)", len(f), len(wantKeys))
	}
	for _, k := range wantKeys {
		if _, ok := f[k]; !ok {
			t.Errorf("Fields() missing key %q", k)
		}
	}

	strs := make(map[string]string, len(f))
	for k, v := range f {
		strs[k] = v.(string)
	}
	back := FromFields("doc-1", strs)

	if back.ID != "doc-1" {
		t.Errorf("ID = %q", back.ID)
	}
	if back.Company != "Beta" || back.Title != "Designer" {
		t.Errorf("got company=%q title=%q", back.Company, back.Title)
	}
	if len(back.Skills) != 2 || back.Skills[0] != "python" {
		t.Errorf("Skills = %v", back.Skills)
	}
	if back.PostedAt == nil || !back.PostedAt.Equal(postedAt) {
		t.Errorf("PostedAt = %v, want %v", back.PostedAt, postedAt)
	}
}

func TestFromFields_BadTimestampsDefault(t *testing.T) {
	r := FromFields("doc-2", map[string]string{
		"title":       "X",
		"posted_date": "not-a-date",
		"created_at":  "",
	})
	if r.PostedDate.IsZero() || r.CreatedAt.IsZero() {
		t.Error("bad timestamps should default to now, not zero")
	}
	if r.Status != StatusPending {
		t.Errorf("Status = %q, want pending default", r.Status)
	}
	if r.Skills == nil {
		t.Error("Skills must never be nil")
	}
}
