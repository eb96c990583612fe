// Package publish delivers pending job records to a chat channel through an
// incoming webhook, as rich embeds batched a handful at a time.
package publish

import (
	"fmt"
	"strings"

	"github.com/andrewwu13/employment-bot/internal/job"
)

const (
	embedColor = 0x0099ff

	maxSkillsShown    = 5
	maxDescriptionLen = 300
)

type Embed struct {
	Title  string       `json:"title,omitempty"`
	URL    string       `json:"url,omitempty"`
	Color  int          `json:"color,omitempty"`
	Fields []EmbedField `json:"fields,omitempty"`
	Footer *EmbedFooter `json:"footer,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// Message is one webhook delivery. Each record goes out as its own message so
// delivery success maps one-to-one onto record status.
type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// BuildEmbed renders one record. Empty fields are dropped rather than shown
// blank, skills display caps at five, and long descriptions are cut with an
// ellipsis.
func BuildEmbed(rec job.Record, index, total int) Embed {
	title := rec.Title
	if title == "" {
		title = "Untitled role"
	}
	if total > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, index+1, total)
	}

	e := Embed{
		Title: title,
		URL:   rec.URL,
		Color: embedColor,
		Footer: &EmbedFooter{
			Text: "Posted: " + rec.PostedDate.Format("Jan 2, 2006"),
		},
	}

	if rec.Company != "" {
		e.Fields = append(e.Fields, EmbedField{Name: "🏢 Company", Value: rec.Company, Inline: true})
	}
	if rec.Location != "" {
		e.Fields = append(e.Fields, EmbedField{Name: "📍 Location", Value: rec.Location, Inline: true})
	}
	if len(rec.Skills) > 0 {
		shown := rec.Skills
		if len(shown) > maxSkillsShown {
			shown = shown[:maxSkillsShown]
		}
		e.Fields = append(e.Fields, EmbedField{Name: "💻 Skills", Value: strings.Join(shown, ", ")})
	}
	if rec.Description != "" {
		desc := rec.Description
		if r := []rune(desc); len(r) > maxDescriptionLen {
			desc = string(r[:maxDescriptionLen]) + "..."
		}
		e.Fields = append(e.Fields, EmbedField{Name: "📝 Description", Value: desc})
	}

	return e
}
