package bot

import (
	"context"
	"time"

	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

// Poller repeatedly asks for updates past the tracked offset and routes
// each of them. A failed tick is dropped; the next tick retries from the
// same offset.
type Poller struct {
	client   *api.Client
	tracker  *Tracker
	router   *Router
	interval time.Duration
	timeout  time.Duration
}

// Run polls once immediately and then once per interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	log := logger.Component("poller")
	log.WithFields(logrus.Fields{
		"interval": p.interval,
		"timeout":  p.timeout,
		"offset":   p.tracker.Value(),
	}).Info("update-polling-started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.WithFields(logrus.Fields{
				"offset": p.tracker.Value(),
				"error":  err,
			}).Warn("poll-tick-failed")
		}

		select {
		case <-ctx.Done():
			log.Info("update-polling-stopped")
			return
		case <-ticker.C:
		}
	}
	log.Info("update-polling-stopped")
}

// Tick performs one getUpdates call and routes the batch. It returns the
// number of updates received.
func (p *Poller) Tick(ctx context.Context) (int, error) {
	updates, err := p.client.GetUpdates(ctx, api.GetUpdatesParams{
		Offset:  p.tracker.Value(),
		Timeout: pollSeconds(p.timeout),
	})
	if err != nil {
		return 0, err
	}

	for _, update := range updates {
		logger.Component("poller").WithField("update_id", update.UpdateID).Debug("update-received")
		if update.UpdateID >= 0 {
			p.tracker.Advance(uint64(update.UpdateID) + 1)
		}
		result := p.router.Route(update)
		logger.Component("poller").WithFields(logrus.Fields{
			"update_id": update.UpdateID,
			"route":     result.Kind.String(),
			"command":   result.Command,
		}).Debug("update-routed")
	}
	return len(updates), nil
}

// pollSeconds converts a long-poll timeout to whole seconds, rounding up.
func pollSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
