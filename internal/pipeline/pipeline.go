// Package pipeline runs one pass of the scrape flow: pull unread alert mail,
// unpack the job tables, scrape each apply link, and persist the merged
// records as pending postings.
package pipeline

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/andrewwu13/employment-bot/internal/events"
	"github.com/andrewwu13/employment-bot/internal/job"
	"github.com/andrewwu13/employment-bot/internal/mailbox"
	"github.com/andrewwu13/employment-bot/internal/store"
)

// Scraper is where the pipeline hands off apply links; satisfied by
// scrape.Scraper.
type Scraper interface {
	Scrape(ctx context.Context, url string) (job.Scraped, error)
}

type Service struct {
	Mail     mailbox.Client
	Store    store.Jobs
	Scraper  Scraper
	Sender   string
	Cooldown time.Duration
	Hub      *events.Hub

	running atomic.Bool
}

// RunResult summarizes one pipeline pass. A skipped pass means another run
// held the slot; nothing was fetched or written.
type RunResult struct {
	OK        bool          `json:"ok"`
	Skipped   bool          `json:"skipped,omitempty"`
	Processed int           `json:"processed"`
	Errors    int           `json:"errors"`
	Duration  time.Duration `json:"duration"`
	Err       string        `json:"error,omitempty"`
}

// Run executes a single pipeline pass. Concurrent calls are collapsed to one:
// whoever flips the running flag does the work, everyone else gets a skipped
// summary with zero side effects.
func (s *Service) Run(ctx context.Context) RunResult {
	if !s.running.CompareAndSwap(false, true) {
		log.Printf("[pipeline] run already in progress, skipping")
		return RunResult{Skipped: true}
	}
	defer s.running.Store(false)

	start := time.Now()

	if s.Mail == nil {
		return RunResult{Err: "no mail source configured"}
	}

	msgs, err := s.Mail.FetchUnread(ctx, s.Sender)
	if err != nil {
		return RunResult{Errors: 1, Duration: time.Since(start), Err: err.Error()}
	}
	if len(msgs) == 0 {
		log.Printf("[pipeline] no unread alert mail")
		return RunResult{OK: true, Duration: time.Since(start)}
	}

	var tuples []mailbox.JobTuple
	for _, m := range msgs {
		parsed, err := mailbox.ParseJobs(m.BodyHTML)
		if err != nil {
			log.Printf("[pipeline] parse %s: %v", m.ID, err)
			continue
		}
		for i := range parsed {
			parsed[i].EmailSubject = m.Subject
			parsed[i].EmailDate = m.Date.UTC().Format(time.RFC3339)
			parsed[i].EmailFrom = m.From
		}
		tuples = append(tuples, parsed...)

		// The listings are in hand; the message is done even if some of its
		// tuples fail downstream.
		if err := s.Mail.MarkRead(ctx, m.ID); err != nil {
			log.Printf("[pipeline] mark read %s: %v", m.ID, err)
		}
	}
	log.Printf("[pipeline] %d job listing(s) across %d message(s)", len(tuples), len(msgs))

	res := RunResult{OK: true}
	for i, t := range tuples {
		if err := s.processTuple(ctx, t); err != nil {
			log.Printf("[pipeline] %q at %q: %v", t.JobTitle, t.CompanyName, err)
			res.Errors++
		} else {
			res.Processed++
		}

		// Space out page fetches; the last tuple needs no trailing pause.
		if i < len(tuples)-1 && s.Cooldown > 0 {
			select {
			case <-ctx.Done():
				res.Err = ctx.Err().Error()
				res.OK = false
				res.Duration = time.Since(start)
				return res
			case <-time.After(s.Cooldown):
			}
		}
	}

	res.Duration = time.Since(start)
	log.Printf("[pipeline] done: %d processed, %d errors in %s",
		res.Processed, res.Errors, res.Duration.Round(time.Millisecond))
	return res
}

func (s *Service) processTuple(ctx context.Context, t mailbox.JobTuple) error {
	scraped, err := s.Scraper.Scrape(ctx, t.ApplyLink)
	if err != nil {
		return err
	}

	rec := job.New(job.Source{
		Scraped:      &scraped,
		CompanyName:  t.CompanyName,
		JobTitle:     t.JobTitle,
		ApplyLink:    t.ApplyLink,
		EmailSubject: t.EmailSubject,
		EmailDate:    t.EmailDate,
	})

	id, err := s.Store.Add(ctx, rec.Fields())
	if err != nil {
		return err
	}

	if s.Hub != nil {
		s.Hub.Publish(events.JobCreated(id, rec.Title, rec.Company))
	}
	return nil
}
