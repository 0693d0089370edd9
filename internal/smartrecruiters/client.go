package smartrecruiters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "careers-gateway/1.0"

type Config struct {
	// BaseURL is the API root, e.g. https://api.smartrecruiters.com
	BaseURL string
	// IdentityURL is the OAuth2 token endpoint,
	// e.g. https://api.smartrecruiters.com/identity/oauth/token
	IdentityURL  string
	ClientID     string
	ClientSecret string
}

// Client is a thin typed wrapper over the SmartRecruiters REST API. Every
// call is bearer-authenticated through the shared TokenSource.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  *TokenSource
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: 25 * time.Second},
		tokens:  NewTokenSource(cfg.IdentityURL, cfg.ClientID, cfg.ClientSecret),
	}
}

// Tokens exposes the token source so callers can pre-warm it.
func (c *Client) Tokens() *TokenSource { return c.tokens }

type ListJobsOpts struct {
	City   string
	Limit  int
	PageID string
}

// ListJobs fetches one page of the jobs search endpoint. Sorting by job id is
// delegated to the API; nothing is reordered locally.
func (c *Client) ListJobs(ctx context.Context, opts ListJobsOpts) (JobsPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{
		"limit": {strconv.Itoa(limit)},
		"sort":  {"job_id"},
	}
	if city := strings.TrimSpace(opts.City); city != "" && city != "all" {
		params.Set("city", city)
	}
	if opts.PageID != "" {
		params.Set("pageId", opts.PageID)
	}

	var page JobsPage
	if err := c.getJSON(ctx, "list jobs", c.baseURL+"/jobs?"+params.Encode(), &page); err != nil {
		return JobsPage{}, err
	}
	return page, nil
}

// GetJob fetches a job with its full ad content. Upstream 404 maps to
// ErrNotFound so callers can render a not-found state.
func (c *Client) GetJob(ctx context.Context, id string) (JobDetail, error) {
	var detail JobDetail
	err := c.getJSON(ctx, "get job", c.baseURL+"/jobs/"+url.PathEscape(id), &detail)
	if err != nil {
		var ue *UpstreamError
		if asUpstream(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return JobDetail{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return JobDetail{}, err
	}
	return detail, nil
}

// GetPublications lists a job's active publications. A job with no active
// publications legitimately 404s upstream; that maps to an empty slice.
func (c *Client) GetPublications(ctx context.Context, id string) ([]Publication, error) {
	u := c.baseURL + "/jobs/" + url.PathEscape(id) + "/publication?activeOnly=true"

	var pr publicationsResponse
	if err := c.getJSON(ctx, "get publications", u, &pr); err != nil {
		var ue *UpstreamError
		if asUpstream(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return pr.Content, nil
}

// CreateCandidate creates a candidate record. The API rejects an empty last
// name, so a missing one is backfilled with the first name.
func (c *Client) CreateCandidate(ctx context.Context, firstName, lastName, email string) (Candidate, error) {
	if strings.TrimSpace(lastName) == "" {
		lastName = firstName
	}

	body, err := json.Marshal(map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
	})
	if err != nil {
		return Candidate{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/candidates", bytes.NewReader(body))
	if err != nil {
		return Candidate{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("create candidate: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Candidate{}, &UpstreamError{Op: "create candidate", StatusCode: res.StatusCode, Body: readBody(res.Body)}
	}

	var cand Candidate
	if err := json.NewDecoder(res.Body).Decode(&cand); err != nil {
		return Candidate{}, &UpstreamError{Op: "create candidate", StatusCode: res.StatusCode, Body: "decode: " + err.Error()}
	}
	if cand.ID == "" {
		return Candidate{}, &UpstreamError{Op: "create candidate", StatusCode: res.StatusCode, Body: "missing candidate id"}
	}
	return cand, nil
}

// UploadAttachment uploads a resume file to a candidate-scoped attachments
// endpoint as multipart form data with type=RESUME.
func (c *Client) UploadAttachment(ctx context.Context, candidateID, filename, contentType string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.WriteField("type", "RESUME"); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	u := c.baseURL + "/candidates/" + url.PathEscape(candidateID) + "/attachments"
	req, err := c.newRequest(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &UpstreamError{Op: "upload attachment", StatusCode: res.StatusCode, Body: readBody(res.Body)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, op, u string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &UpstreamError{Op: op, StatusCode: res.StatusCode, Body: readBody(res.Body)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, StatusCode: res.StatusCode, Body: "decode: " + err.Error()}
	}
	return nil
}

func asUpstream(err error, target **UpstreamError) bool {
	return errors.As(err, target)
}
