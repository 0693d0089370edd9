package poll

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"careers-gateway/internal/events"
	"careers-gateway/internal/jobs"
)

// StartRefresher re-warms the listings cache on a ticker so the cache rarely
// expires under a visitor and newly published jobs show up without waiting
// for traffic. Failures are logged and skipped; the stale cache keeps
// serving until the next tick.
func StartRefresher(svc *jobs.Service, hub *events.Hub, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for range t.C {
			if err := RefreshOnce(svc, hub); err != nil {
				log.Printf("[refresh] error: %v", err)
			}
		}
	}()
}

// RefreshOnce refreshes the default listing page and pre-warms details for
// the jobs on it.
func RefreshOnce(svc *jobs.Service, hub *events.Hub) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	visible, err := svc.WarmDefault(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, j := range visible {
		id := j.ID
		g.Go(func() error {
			if err := svc.WarmDetail(gctx, id); err != nil {
				log.Printf("[refresh] warm detail job=%s err=%v", id, err)
			}
			return nil // best-effort: one bad job shouldn't stop the rest
		})
	}
	_ = g.Wait()

	log.Printf("[refresh] ok visible=%d", len(visible))
	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeJobsRefreshed, 1, map[string]any{"visible": len(visible)}))
	}
	return nil
}
