package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"careers-gateway/internal/candidates"
	"careers-gateway/internal/jobs"
	"careers-gateway/internal/smartrecruiters"
)

type fakeATS struct {
	page    smartrecruiters.JobsPage
	listErr error

	detail    smartrecruiters.JobDetail
	detailErr error

	pubs    []smartrecruiters.Publication
	pubsErr error

	createErr error
	uploadErr error
}

func (f *fakeATS) ListJobs(ctx context.Context, opts smartrecruiters.ListJobsOpts) (smartrecruiters.JobsPage, error) {
	if f.listErr != nil {
		return smartrecruiters.JobsPage{}, f.listErr
	}
	return f.page, nil
}

func (f *fakeATS) GetJob(ctx context.Context, id string) (smartrecruiters.JobDetail, error) {
	if f.detailErr != nil {
		return smartrecruiters.JobDetail{}, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeATS) GetPublications(ctx context.Context, id string) ([]smartrecruiters.Publication, error) {
	if f.pubsErr != nil {
		return nil, f.pubsErr
	}
	return f.pubs, nil
}

func (f *fakeATS) CreateCandidate(ctx context.Context, firstName, lastName, email string) (smartrecruiters.Candidate, error) {
	if f.createErr != nil {
		return smartrecruiters.Candidate{}, f.createErr
	}
	return smartrecruiters.Candidate{ID: "cand-42", FirstName: firstName, LastName: lastName, Email: email}, nil
}

func (f *fakeATS) UploadAttachment(ctx context.Context, candidateID, filename, contentType string, file io.Reader) error {
	return f.uploadErr
}

func newTestMux(fake *fakeATS, limiter *IPLimiter) *http.ServeMux {
	return NewMux(Deps{
		Jobs:          jobs.NewService(fake, "Platform", "Default Career Page", 0),
		Candidates:    candidates.NewService(fake),
		SubmitLimiter: limiter,
	})
}

func do(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestJobsListEnvelope(t *testing.T) {
	fake := &fakeATS{page: smartrecruiters.JobsPage{Content: []smartrecruiters.Job{
		{
			ID: "j1", Title: "Engineer", Status: "sourcing", PostingStatus: "PUBLIC",
			Department: &smartrecruiters.Department{Label: "Platform"},
			Location:   smartrecruiters.Location{City: "Lisbon"},
		},
	}}}
	mux := newTestMux(fake, nil)

	rr := do(mux, httptest.NewRequest(http.MethodGet, "/jobs?city=all", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	require.EqualValues(t, 1, body["totalFound"])
	require.Len(t, body["jobs"], 1)
	require.Equal(t, []any{"Lisbon"}, body["cities"])
}

func TestJobsListFailureEnvelope(t *testing.T) {
	fake := &fakeATS{listErr: errors.New("upstream down")}
	mux := newTestMux(fake, nil)

	rr := do(mux, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	body := decode(t, rr)
	require.Equal(t, "Failed to fetch jobs", body["error"])
	require.Equal(t, []any{}, body["jobs"], "callers always get a well-formed shape")
	require.Equal(t, []any{}, body["cities"])
}

func TestJobDetail404Vs500(t *testing.T) {
	fake := &fakeATS{detailErr: fmt.Errorf("job x: %w", smartrecruiters.ErrNotFound)}
	mux := newTestMux(fake, nil)

	rr := do(mux, httptest.NewRequest(http.MethodGet, "/jobs/x", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Job not found", decode(t, rr)["error"])

	fake.detailErr = &smartrecruiters.UpstreamError{Op: "get job", StatusCode: 500}
	rr = do(mux, httptest.NewRequest(http.MethodGet, "/jobs/x", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "Failed to fetch job details", decode(t, rr)["error"])
}

func TestJobDetailSuccess(t *testing.T) {
	fake := &fakeATS{detail: smartrecruiters.JobDetail{
		Job: smartrecruiters.Job{ID: "j1", Title: "Engineer", Location: smartrecruiters.Location{City: "Lisbon"}},
	}}
	mux := newTestMux(fake, nil)

	rr := do(mux, httptest.NewRequest(http.MethodGet, "/jobs/j1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	job, ok := body["job"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "j1", job["id"])
}

func TestPublicationNullVsError(t *testing.T) {
	fake := &fakeATS{pubs: []smartrecruiters.Publication{{SourceName: "Indeed", PostingID: "a"}}}
	mux := newTestMux(fake, nil)

	// No career-page publication: 200 with null, not an error.
	rr := do(mux, httptest.NewRequest(http.MethodGet, "/jobs/j1/publication", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	require.Nil(t, body["publication"])
	require.NotEmpty(t, body["message"])

	fake.pubs = []smartrecruiters.Publication{{SourceName: "Default Career Page", PostingID: "X"}}
	rr = do(mux, httptest.NewRequest(http.MethodGet, "/jobs/j1/publication", nil))
	body = decode(t, rr)
	pub, ok := body["publication"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "X", pub["postingId"])

	fake.pubsErr = errors.New("upstream down")
	rr = do(mux, httptest.NewRequest(http.MethodGet, "/jobs/j1/publication", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body = decode(t, rr)
	require.Nil(t, body["publication"])
	require.NotEmpty(t, body["error"])
}

func multipartSubmission(t *testing.T, name, email, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("email", email))
	if filename != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSubmitSuccess(t *testing.T) {
	mux := newTestMux(&fakeATS{}, nil)

	body, ct := multipartSubmission(t, "John Doe", "john@x.com", "cv.pdf", "application/pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ct)

	rr := do(mux, req)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode(t, rr)
	require.Equal(t, true, got["success"])
	require.Equal(t, "cand-42", got["candidateId"])
}

func TestSubmitValidationIs400(t *testing.T) {
	mux := newTestMux(&fakeATS{createErr: errors.New("must not be reached")}, nil)

	// Missing file.
	body, ct := multipartSubmission(t, "John Doe", "john@x.com", "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ct)
	rr := do(mux, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotEmpty(t, decode(t, rr)["error"])

	// Wrong file type.
	body, ct = multipartSubmission(t, "John Doe", "john@x.com", "cv.txt", "text/plain", "hi")
	req = httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ct)
	rr = do(mux, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitUpstreamFailureIs500Generic(t *testing.T) {
	mux := newTestMux(&fakeATS{createErr: &smartrecruiters.UpstreamError{Op: "create candidate", StatusCode: 503, Body: "secret detail"}}, nil)

	body, ct := multipartSubmission(t, "John Doe", "john@x.com", "cv.pdf", "application/pdf", "%PDF")
	req := httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ct)

	rr := do(mux, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "Failed to submit application", decode(t, rr)["error"])
	require.NotContains(t, rr.Body.String(), "secret detail", "upstream bodies never leak to users")
}

func TestSubmitRateLimited(t *testing.T) {
	mux := newTestMux(&fakeATS{}, NewIPLimiter(1, 1))

	send := func() *httptest.ResponseRecorder {
		body, ct := multipartSubmission(t, "John Doe", "john@x.com", "cv.pdf", "application/pdf", "%PDF")
		req := httptest.NewRequest(http.MethodPost, "/candidates", body)
		req.Header.Set("Content-Type", ct)
		req.RemoteAddr = "203.0.113.7:5000"
		return do(mux, req)
	}

	require.Equal(t, http.StatusOK, send().Code)
	require.Equal(t, http.StatusTooManyRequests, send().Code)
}

func TestSecretsRouteRejectsBadJSON(t *testing.T) {
	mux := newTestMux(&fakeATS{}, nil)
	rr := do(mux, httptest.NewRequest(http.MethodPost, "/secrets/smartrecruiters", strings.NewReader("{not json")))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&fakeATS{}, nil)
	rr := do(mux, httptest.NewRequest(http.MethodDelete, "/jobs", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
