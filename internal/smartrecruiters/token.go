package smartrecruiters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

// expiryMargin keeps us from using a token within 60s of its real expiry.
const expiryMargin = 60 * time.Second

type accessToken struct {
	token     string
	expiresAt time.Time
}

// TokenSource caches a single client-credentials bearer token and refreshes
// it on expiry. The slot is an atomic.Value: two concurrent refreshes may both
// hit the identity endpoint, last writer wins, both tokens are valid. That
// benign race is cheaper than serializing every request behind a mutex.
type TokenSource struct {
	identityURL  string
	clientID     string
	clientSecret string
	hc           *http.Client

	cached atomic.Value // accessToken

	now func() time.Time
}

func NewTokenSource(identityURL, clientID, clientSecret string) *TokenSource {
	return &TokenSource{
		identityURL:  identityURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		hc:           &http.Client{Timeout: 25 * time.Second},
		now:          time.Now,
	}
}

// Token returns the cached bearer token, refreshing it via the OAuth2
// client-credentials grant when absent or expired.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if t, ok := ts.cached.Load().(accessToken); ok && ts.now().Before(t.expiresAt) {
		return t.token, nil
	}

	if strings.TrimSpace(ts.clientID) == "" || strings.TrimSpace(ts.clientSecret) == "" {
		return "", ErrCredentialsMissing
	}

	form := url.Values{
		"client_id":     {ts.clientID},
		"client_secret": {ts.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.identityURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := ts.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &AuthError{StatusCode: res.StatusCode, Body: readBody(res.Body)}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		return "", &AuthError{StatusCode: res.StatusCode, Body: "decode: " + err.Error()}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{StatusCode: res.StatusCode, Body: "empty access_token"}
	}

	ts.cached.Store(accessToken{
		token:     tr.AccessToken,
		expiresAt: ts.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryMargin),
	})
	return tr.AccessToken, nil
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	return string(b)
}
