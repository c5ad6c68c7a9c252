package worker

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pdfchat/internal/session"
)

// ExpirySweeper periodically removes sessions that have been inactive
// longer than the configured timeout.
type ExpirySweeper struct {
	registry *session.Registry
	timeout  time.Duration
	interval time.Duration
	cron     *cron.Cron
}

func NewExpirySweeper(registry *session.Registry, timeout, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ExpirySweeper{
		registry: registry,
		timeout:  timeout,
		interval: interval,
	}
}

func (w *ExpirySweeper) Start() error {
	if w.cron != nil {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() {
		if removed := w.registry.SweepExpired(w.timeout); removed > 0 {
			log.Printf("expiry sweep removed %d session(s)", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule expiry sweep failed: %w", err)
	}

	c.Start()
	w.cron = c
	return nil
}

func (w *ExpirySweeper) Close() {
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
		w.cron = nil
	}
}
