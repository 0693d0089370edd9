package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"careers-gateway/internal/jobs"
	"careers-gateway/internal/smartrecruiters"
)

type JobsHandler struct {
	Svc *jobs.Service
}

// List serves GET /jobs?city&search&limit&pageId. Failures degrade to an
// empty-but-valid shape so the jobs page renders its empty state instead of
// crashing.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 100
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	res, err := h.Svc.OpenPositions(r.Context(), jobs.Query{
		Search: q.Get("search"),
		City:   q.Get("city"),
		Limit:  limit,
		PageID: q.Get("pageId"),
	})
	if err != nil {
		reqID := RequestIDFrom(r.Context())
		log.Printf("level=error msg=\"list jobs\" request_id=%s err=%v", reqID, err)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "Failed to fetch jobs",
			"jobs":   []any{},
			"cities": []any{},
		})
		return
	}
	writeJSON(w, res)
}

// GetByPath serves GET /jobs/{id} and GET /jobs/{id}/publication.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/jobs/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.detail(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "publication":
		h.publication(w, r, parts[0])
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_path", "Job ID is required")
	}
}

func (h JobsHandler) detail(w http.ResponseWriter, r *http.Request, id string) {
	detail, err := h.Svc.JobDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, smartrecruiters.ErrNotFound) {
			WriteJSON(w, http.StatusNotFound, map[string]any{"error": "Job not found"})
			return
		}
		reqID := RequestIDFrom(r.Context())
		log.Printf("level=error msg=\"job detail\" request_id=%s job=%s err=%v", reqID, id, err)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to fetch job details"})
		return
	}
	writeJSON(w, map[string]any{"job": detail})
}

func (h JobsHandler) publication(w http.ResponseWriter, r *http.Request, id string) {
	target, err := h.Svc.ApplyTarget(r.Context(), id)
	if err != nil {
		reqID := RequestIDFrom(r.Context())
		log.Printf("level=error msg=\"publication\" request_id=%s job=%s err=%v", reqID, id, err)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error":       "Failed to fetch publication",
			"publication": nil,
		})
		return
	}
	if target == nil {
		// A legitimate state: the job takes no external applications right now.
		writeJSON(w, map[string]any{
			"publication": nil,
			"message":     "No active career page publication found",
		})
		return
	}
	writeJSON(w, map[string]any{"publication": target})
}
