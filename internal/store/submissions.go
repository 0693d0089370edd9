package store

import (
	"context"
	"database/sql"
	"time"
)

// SubmissionRecord is the audit trail of one application attempt. Only
// outcome metadata is kept: the applicant's name, email and resume never
// touch local storage.
type SubmissionRecord struct {
	ID          int64  `json:"id"`
	CandidateID string `json:"candidateId,omitempty"`
	JobID       string `json:"jobId,omitempty"`
	Status      string `json:"status"` // submitted / upstream_failed
	RequestID   string `json:"requestId,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

const (
	SubmissionOK     = "submitted"
	SubmissionFailed = "upstream_failed"
)

func RecordSubmission(ctx context.Context, db *sql.DB, rec SubmissionRecord) (int64, error) {
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO submissions(candidate_id, job_id, status, request_id, created_at)
VALUES(?,?,?,?,?);`,
		rec.CandidateID, rec.JobID, rec.Status, rec.RequestID, rec.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func ListSubmissions(ctx context.Context, db *sql.DB, limit int) ([]SubmissionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, candidate_id, job_id, status, request_id, created_at
FROM submissions
ORDER BY created_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SubmissionRecord{}
	for rows.Next() {
		var rec SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.CandidateID, &rec.JobID, &rec.Status, &rec.RequestID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
