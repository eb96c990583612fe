package publish

import (
	"strings"
	"testing"
	"time"

	"github.com/andrewwu13/employment-bot/internal/job"
)

func sampleRecord() job.Record {
	return job.Record{
		ID:          "abc",
		URL:         "https://jobs.acme.example/1",
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Build services.",
		Skills:      []string{"aws", "docker", "go", "kubernetes", "postgresql", "python", "sql"},
		PostedDate:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func fieldValue(e Embed, name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func TestBuildEmbedBasics(t *testing.T) {
	e := BuildEmbed(sampleRecord(), 0, 1)

	if e.Title != "Backend Engineer" {
		t.Errorf("title = %q", e.Title)
	}
	if e.URL != "https://jobs.acme.example/1" {
		t.Errorf("url = %q", e.URL)
	}
	if e.Color != 0x0099ff {
		t.Errorf("color = %#x", e.Color)
	}
	if e.Footer == nil || e.Footer.Text != "Posted: Aug 20, 2026" {
		t.Errorf("footer = %+v", e.Footer)
	}
	if v, ok := fieldValue(e, "🏢 Company"); !ok || v != "Acme" {
		t.Errorf("company field = %q, %v", v, ok)
	}
}

func TestBuildEmbedBatchNumbering(t *testing.T) {
	e := BuildEmbed(sampleRecord(), 1, 3)
	if e.Title != "Backend Engineer (2/3)" {
		t.Errorf("title = %q", e.Title)
	}
}

func TestBuildEmbedCapsSkillsAtFive(t *testing.T) {
	e := BuildEmbed(sampleRecord(), 0, 1)

	v, ok := fieldValue(e, "💻 Skills")
	if !ok {
		t.Fatal("no skills field")
	}
	if got := len(strings.Split(v, ", ")); got != 5 {
		t.Errorf("skills shown = %d (%q), want 5", got, v)
	}
}

func TestBuildEmbedTruncatesDescription(t *testing.T) {
	rec := sampleRecord()
	rec.Description = strings.Repeat("x", 400)

	e := BuildEmbed(rec, 0, 1)
	v, ok := fieldValue(e, "📝 Description")
	if !ok {
		t.Fatal("no description field")
	}
	if len([]rune(v)) != 303 || !strings.HasSuffix(v, "...") {
		t.Errorf("description len = %d, suffix ok = %v", len([]rune(v)), strings.HasSuffix(v, "..."))
	}
}

func TestBuildEmbedDropsEmptyFields(t *testing.T) {
	rec := sampleRecord()
	rec.Location = ""
	rec.Skills = nil
	rec.Description = ""

	e := BuildEmbed(rec, 0, 1)
	for _, name := range []string{"📍 Location", "💻 Skills", "📝 Description"} {
		if _, ok := fieldValue(e, name); ok {
			t.Errorf("field %q should be dropped when empty", name)
		}
	}
}

func TestBuildEmbedUntitledFallback(t *testing.T) {
	rec := sampleRecord()
	rec.Title = ""

	e := BuildEmbed(rec, 0, 1)
	if e.Title != "Untitled role" {
		t.Errorf("title = %q", e.Title)
	}
}
