package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"careers-gateway/internal/candidates"
	"careers-gateway/internal/config"
	"careers-gateway/internal/events"
	"careers-gateway/internal/jobs"
)

type Deps struct {
	Jobs       *jobs.Service
	Candidates *candidates.Service
	DB         *sql.DB
	Hub        *events.Hub

	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	SubmitLimiter *IPLimiter
}

// NewMux returns the raw mux so main() can wrap it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
		},
	}))

	// Jobs
	jh := JobsHandler{Svc: d.Jobs}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath, // /jobs/{id} and /jobs/{id}/publication
	}))

	// Candidates
	ch := CandidatesHandler{Svc: d.Candidates, DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/candidates", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: RateLimit(d.SubmitLimiter, ch.Submit),
	}))

	// Submission audit (ops)
	sh := SubmissionsHandler{DB: d.DB}
	mux.HandleFunc("/submissions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))

	// Config
	cfgh := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Get,
		http.MethodPut: cfgh.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Path,
	}))

	// Secrets
	sech := SecretsHandler{}
	mux.HandleFunc("/secrets/smartrecruiters", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sech.SetClientSecret,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
