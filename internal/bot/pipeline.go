package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

// pipeline drains one mailbox and calls its handler for each item.
type pipeline[T any] struct {
	name   string
	box    *mailbox[T]
	handle func(ctx context.Context, item T) error
}

// serve runs until the mailbox is closed and drained.
func (p *pipeline[T]) serve(ctx context.Context) {
	log := logger.Component("pipeline").WithField("pipeline", p.name)
	log.Debug("pipeline-started")
	for {
		item, ok := p.box.pop()
		if !ok {
			log.Debug("pipeline-stopped")
			return
		}
		if err := p.invoke(ctx, item); err != nil {
			log.WithFields(logrus.Fields{
				"error": err,
			}).Warn("handler-failed")
		}
	}
}

// invoke calls the handler, turning a panic into an error.
func (p *pipeline[T]) invoke(ctx context.Context, item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Component("pipeline").WithField("stack", string(debug.Stack())).Debug("handler-panic-stack")
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return p.handle(ctx, item)
}

// runner is the type-erased view the dispatcher uses to start pipelines
// of different payload types.
type runner interface {
	serve(ctx context.Context)
}
