package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/keepmind9/botpoll/pkg/constants"
	"github.com/sirupsen/logrus"
)

// RouteKind says where an update ended up.
type RouteKind int

const (
	RouteUnrouted RouteKind = iota // not a command: no text or no marker
	RouteCommand                   // delivered to a registered command
	RouteFallback                  // unknown command, delivered to the fallback
)

func (k RouteKind) String() string {
	switch k {
	case RouteCommand:
		return "command"
	case RouteFallback:
		return "fallback"
	default:
		return "unrouted"
	}
}

// RouteResult describes one routing decision.
type RouteResult struct {
	Kind      RouteKind
	Command   string // candidate command after mention stripping, if any
	Delivered bool   // false when the receiving pipeline was already gone
}

// Router owns the dispatch decision for each inbound update.
type Router struct {
	mention  string
	commands map[string]*mailbox[tgbotapi.Message]
	fallback *mailbox[tgbotapi.Message]
	unrouted *mailbox[tgbotapi.Update]
}

// buildRouter creates one mailbox and pipeline per table entry. The
// pipelines are returned unstarted.
func buildRouter(b *Bot, table *Table) (*Router, []runner) {
	r := &Router{
		mention:  b.identity.Mention(),
		commands: make(map[string]*mailbox[tgbotapi.Message], len(table.commands)),
	}
	var runners []runner

	messagePipeline := func(name string, handler HandlerFunc) *mailbox[tgbotapi.Message] {
		box := newMailbox[tgbotapi.Message]()
		runners = append(runners, &pipeline[tgbotapi.Message]{
			name: name,
			box:  box,
			handle: func(ctx context.Context, msg tgbotapi.Message) error {
				return handler(ctx, b, msg)
			},
		})
		return box
	}

	for command, handler := range table.commands {
		r.commands[command] = messagePipeline(command, handler)
	}
	if table.fallback != nil {
		r.fallback = messagePipeline("fallback", table.fallback)
	}
	if table.unrouted != nil {
		handler := table.unrouted
		box := newMailbox[tgbotapi.Update]()
		runners = append(runners, &pipeline[tgbotapi.Update]{
			name: "unrouted",
			box:  box,
			handle: func(ctx context.Context, update tgbotapi.Update) error {
				return handler(ctx, b, update)
			},
		})
		r.unrouted = box
	}
	return r, runners
}

// Route classifies update and hands it to at most one pipeline.
func (r *Router) Route(update tgbotapi.Update) RouteResult {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return r.forward(update, "")
	}

	tokens := strings.Fields(msg.Text)
	if len(tokens) == 0 || !strings.HasPrefix(tokens[0], constants.CommandMarker) {
		return r.forward(update, "")
	}

	command := tokens[0]
	if r.mention != "" && strings.HasSuffix(command, r.mention) {
		command = strings.TrimSuffix(command, r.mention)
	}

	if box, ok := r.commands[command]; ok {
		routed := *msg
		routed.Text = strings.Join(tokens[1:], " ")
		return RouteResult{
			Kind:      RouteCommand,
			Command:   command,
			Delivered: r.deliver(box, routed, update.UpdateID, command),
		}
	}

	if r.fallback != nil {
		return RouteResult{
			Kind:      RouteFallback,
			Command:   command,
			Delivered: r.deliver(r.fallback, *msg, update.UpdateID, command),
		}
	}

	return r.forward(update, command)
}

func (r *Router) deliver(box *mailbox[tgbotapi.Message], msg tgbotapi.Message, updateID int, command string) bool {
	if box.push(msg) {
		return true
	}
	logger.Component("router").WithFields(logrus.Fields{
		"update_id": updateID,
		"command":   command,
	}).Error("command-pipeline-gone")
	return false
}

func (r *Router) forward(update tgbotapi.Update, command string) RouteResult {
	result := RouteResult{Kind: RouteUnrouted, Command: command}
	if r.unrouted == nil {
		logger.Component("router").WithField("update_id", update.UpdateID).Debug("update-unrouted")
		return result
	}
	result.Delivered = r.unrouted.push(update)
	if !result.Delivered {
		logger.Component("router").WithField("update_id", update.UpdateID).Error("unrouted-pipeline-gone")
	}
	return result
}

// close closes every mailbox; pipelines exit after draining.
func (r *Router) close() {
	for _, box := range r.commands {
		box.close()
	}
	if r.fallback != nil {
		r.fallback.close()
	}
	if r.unrouted != nil {
		r.unrouted.close()
	}
}
