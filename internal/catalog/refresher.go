// Periodic snapshot refresh, so jobs inserted out-of-band show up without a
// restart.
package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher wraps robfig/cron and re-reads the catalog snapshot on a fixed
// interval.
type Refresher struct {
	cron *cron.Cron
	cat  *Postgres
	spec string // cron spec, e.g. "@every 6h"
}

// NewRefresher creates a Refresher that fires every intervalHours hours.
func NewRefresher(cat *Postgres, intervalHours int) *Refresher {
	return &Refresher{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		cat:  cat,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		log.Println("[catalog] Refresh started")
		if err := r.cat.Refresh(ctx); err != nil {
			log.Printf("[catalog] Refresh error: %v", err)
			return
		}
		log.Printf("[catalog] Refresh complete — %d jobs", len(r.cat.Jobs()))
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	log.Printf("[catalog] Refresh scheduler started — spec: %s", r.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (r *Refresher) Stop() {
	r.cron.Stop()
	log.Println("[catalog] Refresh scheduler stopped")
}
