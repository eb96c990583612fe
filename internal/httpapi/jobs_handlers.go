package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andrewwu13/employment-bot/internal/job"
	"github.com/andrewwu13/employment-bot/internal/store"
)

type JobsHandler struct {
	Store store.Jobs
}

// List serves GET /jobs?status=pending&limit=50. Status defaults to pending.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := q.Get("status")
	if status == "" {
		status = string(job.StatusPending)
	}
	limit := 50
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := h.Store.Query(r.Context(), "status", status, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}

	out := make([]jobView, 0, len(jobs))
	for _, rec := range jobs {
		out = append(out, newJobView(rec))
	}
	writeJSON(w, out)
}

func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/jobs/"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_id", "job id is required")
		return
	}

	rec, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such job")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "get_failed", err.Error())
		return
	}
	writeJSON(w, newJobView(rec))
}

type jobView struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location,omitempty"`
	URL            string   `json:"url"`
	Description    string   `json:"description,omitempty"`
	Qualifications string   `json:"qualifications,omitempty"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
	PostedDate     string   `json:"postedDate"`
	CreatedAt      string   `json:"createdAt"`
	PostedAt       string   `json:"postedAt,omitempty"`
}

func newJobView(rec job.Record) jobView {
	v := jobView{
		ID:             rec.ID,
		Title:          rec.Title,
		Company:        rec.Company,
		Location:       rec.Location,
		URL:            rec.URL,
		Description:    rec.Description,
		Qualifications: rec.Qualifications,
		Skills:         rec.Skills,
		Status:         string(rec.Status),
		PostedDate:     rec.PostedDate.UTC().Format(time.RFC3339),
		CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rec.PostedAt != nil {
		v.PostedAt = rec.PostedAt.UTC().Format(time.RFC3339)
	}
	return v
}
