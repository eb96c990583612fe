package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultTimeout = 15 * time.Second

// CollyRenderer fetches pages over plain HTTP with colly. ATS pages ship
// their content server-side, so a scripted browser is not needed; WaitUntil
// is accepted and ignored beyond choosing the request timeout.
type CollyRenderer struct {
	UserAgent string
	Timeout   time.Duration

	limiter *HostLimiter
}

var _ Renderer = (*CollyRenderer)(nil)

func NewCollyRenderer(userAgent string, reqPerSec float64, burst int) *CollyRenderer {
	if userAgent == "" {
		userAgent = "employment-bot/1.0"
	}
	return &CollyRenderer{
		UserAgent: userAgent,
		Timeout:   defaultTimeout,
		limiter:   NewHostLimiter(reqPerSec, burst),
	}
}

func (r *CollyRenderer) Open(ctx context.Context, rawURL string, opts Options) (Result, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return Result{}, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = r.Timeout
	}

	var lastErr error
	var status int
	for attempt := 0; attempt < 3; attempt++ {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if err := r.limiter.WaitURL(ctx, target); err != nil {
			return Result{}, err
		}

		var res Result
		res, status, lastErr = r.fetchOnce(ctx, target, timeout)
		if lastErr == nil {
			return res, nil
		}
		if status == http.StatusTooManyRequests || (status >= 500 && status <= 599) {
			if err := sleepWithContext(ctx, time.Duration(500*(1<<attempt))*time.Millisecond); err != nil {
				return Result{}, err
			}
			continue
		}
		break
	}

	return Result{}, fmt.Errorf("render %s: %w", target, lastErr)
}

func (r *CollyRenderer) fetchOnce(ctx context.Context, target string, timeout time.Duration) (Result, int, error) {
	c := colly.NewCollector(colly.UserAgent(r.UserAgent))
	c.SetRequestTimeout(timeout)

	c.OnRequest(func(req *colly.Request) {
		if ctx.Err() != nil {
			req.Abort()
		}
	})

	var res Result
	status := 0
	var reqErr error
	c.OnResponse(func(resp *colly.Response) {
		status = resp.StatusCode
		res.HTML = string(resp.Body)
		if resp.Request != nil && resp.Request.URL != nil {
			// colly rewrites Request.URL on redirect, so this is where the
			// fetch actually landed.
			res.FinalURL = resp.Request.URL.String()
		}
	})
	c.OnError(func(resp *colly.Response, err error) {
		if resp != nil {
			status = resp.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(target); err != nil {
		return Result{}, status, err
	}
	c.Wait()

	if reqErr != nil {
		return Result{}, status, reqErr
	}
	if status >= 400 {
		return Result{}, status, fmt.Errorf("status %d", status)
	}
	if res.FinalURL == "" {
		res.FinalURL = target
	}
	return res, status, nil
}

func normalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("render: empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String(), nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
