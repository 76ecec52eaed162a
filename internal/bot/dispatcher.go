package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/keepmind9/botpoll/pkg/constants"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned by Start when the dispatcher is running.
var ErrAlreadyRunning = errors.New("dispatcher already running")

// Config holds the session settings of a Dispatcher.
type Config struct {
	Token          string
	Name           string // skips getMe when set
	UpdateInterval time.Duration
	Timeout        time.Duration // long-poll timeout, zero for short polling
	InitialOffset  uint64
}

// Dispatcher runs the poll loop and one pipeline per table entry.
type Dispatcher struct {
	mu      sync.Mutex
	config  Config
	client  *api.Client
	table   *Table
	tracker *Tracker
	bot     *Bot

	starting bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewDispatcher creates a dispatcher. table must not be modified afterwards.
func NewDispatcher(config Config, client *api.Client, table *Table) *Dispatcher {
	if config.UpdateInterval <= 0 {
		config.UpdateInterval = constants.DefaultUpdateInterval
	}
	if config.Timeout < 0 {
		config.Timeout = 0
	}
	if table == nil {
		table = NewTable()
	}
	return &Dispatcher{
		config:  config,
		client:  client,
		table:   table,
		tracker: NewTracker(config.InitialOffset),
	}
}

// Run starts the dispatcher and blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return d.Stop()
}

// Start resolves the bot identity, starts every pipeline and the poll loop
// in the background. The loop ends on Stop or when ctx is cancelled, after
// which Start may be called again.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.starting || d.done != nil {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	d.starting = true
	d.mu.Unlock()

	logger.WithFields(logrus.Fields{
		"token": maskSecret(d.config.Token),
	}).Info("starting-dispatcher-with-long-polling")

	// getMe runs without the lock held
	identity, err := d.resolveIdentity(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.starting = false
	if err != nil {
		logger.WithField("error", err).Error("failed-to-resolve-bot-identity")
		return fmt.Errorf("failed to resolve bot identity: %w", err)
	}
	d.bot = &Bot{
		identity: identity,
		client:   d.client,
		offset:   d.tracker,
	}

	router, runners := buildRouter(d.bot, d.table)
	logger.WithFields(d.table.logFields()).WithField("bot_username", identity.Name).Info("dispatcher-initialized")

	runCtx, cancel := context.WithCancel(ctx)
	// handlers run to completion even while shutting down
	handlerCtx := context.WithoutCancel(runCtx)

	var wg sync.WaitGroup
	for _, r := range runners {
		wg.Add(1)
		go func(r runner) {
			defer wg.Done()
			r.serve(handlerCtx)
		}(r)
	}

	poller := &Poller{
		client:   d.client,
		tracker:  d.tracker,
		router:   router,
		interval: d.config.UpdateInterval,
		timeout:  d.config.Timeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		poller.Run(runCtx)
		router.close()
		wg.Wait()
		cancel()

		d.mu.Lock()
		if d.done == done {
			d.cancel, d.done = nil, nil
		}
		d.mu.Unlock()
		logger.WithField("offset", d.tracker.Value()).Info("dispatcher-stopped")
	}()

	d.cancel = cancel
	d.done = done
	return nil
}

// Stop ends the poll loop and waits for the pipelines to drain. It does
// nothing when the dispatcher is not running.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

// Bot returns the handler context, nil before Start.
func (d *Dispatcher) Bot() *Bot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bot
}

// Offset returns the offset the next poll will use.
func (d *Dispatcher) Offset() uint64 {
	return d.tracker.Value()
}

func (d *Dispatcher) resolveIdentity(ctx context.Context) (Identity, error) {
	identity := Identity{
		Key:            d.config.Token,
		Name:           d.config.Name,
		UpdateInterval: d.config.UpdateInterval,
		Timeout:        d.config.Timeout,
	}
	if identity.Name != "" {
		return identity, nil
	}

	me, err := d.client.GetMe(ctx)
	if err != nil {
		return identity, err
	}
	identity.Name = me.UserName
	logger.WithFields(logrus.Fields{
		"bot_username": me.UserName,
		"bot_id":       me.ID,
	}).Info("bot-identity-resolved")
	return identity, nil
}
