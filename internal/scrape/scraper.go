// Package scrape turns an apply link into scraped job fields. It classifies
// the URL against the site profiles, renders the page, and runs the layered
// extractor over the markup.
package scrape

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/andrewwu13/employment-bot/internal/extract"
	"github.com/andrewwu13/employment-bot/internal/job"
	"github.com/andrewwu13/employment-bot/internal/profile"
	"github.com/andrewwu13/employment-bot/internal/render"
)

type Scraper struct {
	Renderer render.Renderer
	Timeout  time.Duration
}

func New(r render.Renderer, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{Renderer: r, Timeout: timeout}
}

// Scrape fetches the page behind url and extracts its job fields. Extraction
// itself never fails outright; warnings about weak fields are logged and the
// partial result is returned.
func (s *Scraper) Scrape(ctx context.Context, url string) (job.Scraped, error) {
	prof := profile.Classify(url)

	// Profiles with a wait hint belong to script-heavy sites; give those the
	// settle mode so renderers that can honor it do.
	wait := render.WaitDOMReady
	if prof.WaitFor != "" {
		wait = render.WaitNetworkIdle
	}

	res, err := s.Renderer.Open(ctx, url, render.Options{
		WaitUntil: wait,
		Timeout:   s.Timeout,
	})
	if err != nil {
		return job.Scraped{}, fmt.Errorf("scrape %s: %w", url, err)
	}

	scraped, warnings, err := extract.Page(res.HTML, res.FinalURL, prof)
	if err != nil {
		return job.Scraped{}, fmt.Errorf("scrape %s: %w", url, err)
	}
	for _, w := range warnings {
		log.Printf("[scrape] %s: %s", url, w)
	}
	return scraped, nil
}
