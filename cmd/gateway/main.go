package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"careers-gateway/internal/candidates"
	"careers-gateway/internal/config"
	"careers-gateway/internal/events"
	"careers-gateway/internal/httpapi"
	"careers-gateway/internal/jobs"
	"careers-gateway/internal/poll"
	"careers-gateway/internal/secrets"
	"careers-gateway/internal/smartrecruiters"
	"careers-gateway/internal/store"
)

func main() {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	dataDir := os.Getenv("CAREERS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One gateway per data dir: a second process would fight over the
	// sqlite file's single writer.
	lock := flock.New(filepath.Join(dataDir, "gateway.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another gateway is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}

	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	for _, warn := range vr.Warnings {
		log.Printf("level=warn msg=%q", warn)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	clientID := secrets.ClientID()
	clientSecret, err := secrets.ClientSecret(secrets.KeyringAccount(clientID))
	if err != nil {
		// Not fatal: each request fails fast with a configuration error
		// until credentials show up, and the secrets endpoint can fix it.
		log.Printf("level=warn msg=\"ATS credentials missing\" err=%v", err)
	}

	dbPath := filepath.Join(dataDir, "careers.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	hub := events.NewHub()

	client := smartrecruiters.New(smartrecruiters.Config{
		BaseURL:      cfg.SmartRecruiters.BaseURL,
		IdentityURL:  cfg.SmartRecruiters.IdentityURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})

	jobsSvc := jobs.NewService(client, cfg.SmartRecruiters.Department, cfg.SmartRecruiters.PublicationSource, cfg.CacheTTL())
	candSvc := candidates.NewService(client)

	poll.StartRefresher(jobsSvc, hub, cfg.CacheTTL())

	mux := httpapi.NewMux(httpapi.Deps{
		Jobs:          jobsSvc,
		Candidates:    candSvc,
		DB:            db.Pool,
		Hub:           hub,
		CfgVal:        &cfgVal,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		SubmitLimiter: httpapi.NewIPLimiter(cfg.Submissions.RatePerMinute, cfg.Submissions.Burst),
	})

	handler := httpapi.Chain(mux,
		httpapi.Recover,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Cors(cfg.App.AllowedOrigins),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("gateway listening on %s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
