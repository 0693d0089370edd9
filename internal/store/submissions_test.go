package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndListSubmissions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := RecordSubmission(ctx, db.Pool, SubmissionRecord{
		CandidateID: "cand-1",
		JobID:       "job-9",
		Status:      SubmissionOK,
		RequestID:   "req-abc",
	})
	require.NoError(t, err)
	require.Positive(t, id)

	_, err = RecordSubmission(ctx, db.Pool, SubmissionRecord{
		Status:    SubmissionFailed,
		RequestID: "req-def",
	})
	require.NoError(t, err)

	recs, err := ListSubmissions(ctx, db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byReq := map[string]SubmissionRecord{}
	for _, r := range recs {
		require.NotEmpty(t, r.CreatedAt)
		byReq[r.RequestID] = r
	}
	require.Equal(t, "cand-1", byReq["req-abc"].CandidateID)
	require.Equal(t, SubmissionOK, byReq["req-abc"].Status)
	require.Equal(t, SubmissionFailed, byReq["req-def"].Status)
	require.Empty(t, byReq["req-def"].CandidateID)
}

func TestListSubmissionsLimit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := RecordSubmission(ctx, db.Pool, SubmissionRecord{Status: SubmissionOK})
		require.NoError(t, err)
	}

	recs, err := ListSubmissions(ctx, db.Pool, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Bogus limits fall back to the default.
	recs, err = ListSubmissions(ctx, db.Pool, -1)
	require.NoError(t, err)
	require.Len(t, recs, 5)
}
