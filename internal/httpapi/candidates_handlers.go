package httpapi

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"careers-gateway/internal/candidates"
	"careers-gateway/internal/events"
	"careers-gateway/internal/store"
)

// maxSubmissionBytes caps the whole multipart body. Well above the 10 MiB
// resume limit so the oversize case reaches validation and gets its proper
// error instead of an opaque 413.
const maxSubmissionBytes = 32 << 20

type CandidatesHandler struct {
	Svc *candidates.Service
	DB  *sql.DB
	Hub *events.Hub
}

// Submit serves POST /candidates: multipart fields name, email, file, and an
// optional jobId carried into the audit log.
func (h CandidatesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid form data"})
		return
	}

	sub := candidates.Submission{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
	}
	jobID := r.FormValue("jobId")

	if file, hdr, err := r.FormFile("file"); err == nil {
		defer file.Close()
		sub.Resume = candidates.Resume{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
			Content:     file,
		}
	}

	reqID := RequestIDFrom(r.Context())

	candidateID, err := h.Svc.Submit(r.Context(), sub)
	if err != nil {
		if candidates.IsValidationError(err) {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		log.Printf("level=error msg=\"submit application\" request_id=%s err=%v", reqID, err)
		h.record(store.SubmissionRecord{JobID: jobID, Status: store.SubmissionFailed, RequestID: reqID})
		WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to submit application"})
		return
	}

	h.record(store.SubmissionRecord{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      store.SubmissionOK,
		RequestID:   reqID,
	})
	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationReceived, 1, map[string]any{
			"candidateId": candidateID,
			"jobId":       jobID,
		}))
	}

	writeJSON(w, map[string]any{"success": true, "candidateId": candidateID})
}

// record is best-effort: the applicant already got their answer, a broken
// audit log only costs ops visibility.
func (h CandidatesHandler) record(rec store.SubmissionRecord) {
	if h.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.RecordSubmission(ctx, h.DB, rec); err != nil {
		log.Printf("level=error msg=\"record submission\" request_id=%s err=%v", rec.RequestID, err)
	}
}

type SubmissionsHandler struct {
	DB *sql.DB
}

// List serves GET /submissions?limit= for the ops dashboard.
func (h SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := store.ListSubmissions(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", "failed to list submissions")
		return
	}
	writeJSON(w, recs)
}
