package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/andrewwu13/employment-bot/internal/pipeline"
	"github.com/andrewwu13/employment-bot/internal/publish"
)

type RunHandler struct {
	Pipeline  *pipeline.Service
	Poster    *publish.Poster
	RunStatus *atomic.Value // httpapi.RunStatus
}

func (h RunHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.RunStatus.Load().(RunStatus)
	writeJSON(w, st)
}

// Run kicks off one pipeline pass in the background. The pipeline collapses
// overlapping runs itself; this handler just mirrors the outcome into the
// status value.
func (h RunHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.RunStatus.Load().(RunStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	// Swap instead of store: two simultaneous POSTs can both see
	// Running=false, and only one of them may flip it and launch a run.
	started := RunStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	}
	if !h.RunStatus.CompareAndSwap(st, started) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go func() {
		res := h.Pipeline.Run(context.Background())

		now := time.Now().Format(time.RFC3339)
		next := h.RunStatus.Load().(RunStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastProcessed = res.Processed
		next.LastFailed = res.Errors
		if res.Err != "" {
			next.LastError = res.Err
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.RunStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}

// Post runs one posting cycle synchronously and returns its summary.
func (h RunHandler) Post(w http.ResponseWriter, r *http.Request) {
	if h.Poster == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "posting_disabled", "no webhook configured")
		return
	}
	res, err := h.Poster.Post(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "post_failed", err.Error())
		return
	}
	writeJSON(w, res)
}
