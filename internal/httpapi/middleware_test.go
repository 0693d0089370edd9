package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func corsProbe(t *testing.T, allowed []string, origin string) *httptest.ResponseRecorder {
	t.Helper()
	h := Cors(allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCorsAllowsConfiguredOrigin(t *testing.T) {
	allowed := []string{"https://careers.example.com"}

	rr := corsProbe(t, allowed, "https://careers.example.com")
	require.Equal(t, "https://careers.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	// Unlisted origins get no CORS headers at all.
	rr = corsProbe(t, allowed, "https://evil.example.com")
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsEmptyListEchoesAnyOrigin(t *testing.T) {
	rr := corsProbe(t, nil, "http://localhost:3000")
	require.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = corsProbe(t, nil, "")
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsPreflight(t *testing.T) {
	h := Cors([]string{"https://careers.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))
	req := httptest.NewRequest(http.MethodOptions, "/candidates", nil)
	req.Header.Set("Origin", "https://careers.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}
