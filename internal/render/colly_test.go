package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenReturnsHTMLAndFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/job/final", http.StatusFound)
	})
	mux.HandleFunc("/job/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Backend Engineer</h1></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewCollyRenderer("", 100, 10)
	res, err := r.Open(context.Background(), srv.URL+"/job", Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(res.HTML, "Backend Engineer") {
		t.Errorf("html = %q", res.HTML)
	}
	if !strings.HasSuffix(res.FinalURL, "/job/final") {
		t.Errorf("final url = %q, want redirect target", res.FinalURL)
	}
}

func TestOpenSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	r := NewCollyRenderer("employment-bot-test/1.0", 100, 10)
	if _, err := r.Open(context.Background(), srv.URL, Options{}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if gotUA != "employment-bot-test/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestOpenErrorsOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewCollyRenderer("", 100, 10)
	if _, err := r.Open(context.Background(), srv.URL, Options{}); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestOpenRetriesOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	r := NewCollyRenderer("", 100, 10)
	res, err := r.Open(context.Background(), srv.URL, Options{})
	if err != nil {
		t.Fatalf("open after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if !strings.Contains(res.HTML, "ok") {
		t.Errorf("html = %q", res.HTML)
	}
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	r := NewCollyRenderer("", 100, 10)
	if _, err := r.Open(context.Background(), "", Options{}); err == nil {
		t.Fatal("expected error for empty url")
	}
}
