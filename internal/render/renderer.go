// Package render fetches job pages and hands back their final HTML. The
// Renderer interface hides the fetching strategy from the scraper.
package render

import (
	"context"
	"time"
)

// WaitUntil names how long a renderer should let a page settle before
// returning its markup. HTTP renderers return once the body is read either
// way; the mode is a hint for renderers that can honor it.
type WaitUntil string

const (
	WaitDOMReady    WaitUntil = "dom-ready"
	WaitNetworkIdle WaitUntil = "network-idle"
)

type Options struct {
	WaitUntil WaitUntil
	Timeout   time.Duration
}

// Result carries the markup plus the URL the fetch actually landed on after
// redirects. Extraction uses FinalURL, not the requested one, so company
// inference sees the real host.
type Result struct {
	FinalURL string
	HTML     string
}

type Renderer interface {
	Open(ctx context.Context, url string, opts Options) (Result, error)
}
