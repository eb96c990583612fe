package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andrewwu13/employment-bot/internal/render"
)

type stubRenderer struct {
	res  render.Result
	err  error
	got  string
	opts render.Options
}

func (s *stubRenderer) Open(_ context.Context, url string, opts render.Options) (render.Result, error) {
	s.got = url
	s.opts = opts
	return s.res, s.err
}

const leverPage = `<html><head><title>Lever</title></head><body>
<div class="posting-headline"><h2>Platform Engineer</h2></div>
<div class="posting-categories"><div class="location">Toronto, ON</div></div>
<div class="section page-centered">We build infrastructure in Go and Kubernetes.
Requirements: 3+ years with PostgreSQL and Docker.</div>
</body></html>`

func TestScrapeExtractsFromRenderedPage(t *testing.T) {
	r := &stubRenderer{res: render.Result{
		FinalURL: "https://jobs.lever.co/acme/123",
		HTML:     leverPage,
	}}
	s := New(r, time.Second)

	scraped, err := s.Scrape(context.Background(), "https://jobs.lever.co/acme/123")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if scraped.Title != "Platform Engineer" {
		t.Errorf("title = %q", scraped.Title)
	}
	if scraped.Location != "Toronto, ON" {
		t.Errorf("location = %q", scraped.Location)
	}
	if len(scraped.Skills) == 0 {
		t.Error("expected skills from body text")
	}
	// Lever pages get the network-idle hint; the profile carries a wait
	// selector.
	if r.opts.WaitUntil != render.WaitNetworkIdle {
		t.Errorf("wait = %q", r.opts.WaitUntil)
	}
}

func TestScrapeUsesFinalURLForCompanyInference(t *testing.T) {
	// Redirect from a shortener host to the real board; company must come
	// from where the fetch landed.
	r := &stubRenderer{res: render.Result{
		FinalURL: "https://jobs.lever.co/northwind/456",
		HTML:     `<html><body><div class="posting-headline"><h2>SRE</h2></div></body></html>`,
	}}
	s := New(r, time.Second)

	scraped, err := s.Scrape(context.Background(), "https://short.example/r/456")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if scraped.Company != "northwind" {
		t.Errorf("company = %q, want inferred from final url", scraped.Company)
	}
}

func TestScrapePropagatesRenderFailure(t *testing.T) {
	r := &stubRenderer{err: errors.New("boom")}
	s := New(r, time.Second)

	if _, err := s.Scrape(context.Background(), "https://example.com/job"); err == nil {
		t.Fatal("expected render error to propagate")
	}
}
