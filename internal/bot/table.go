package bot

import (
	"sort"

	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

// Table maps command names to handlers. It is plain data: registering
// starts nothing, the Dispatcher starts one pipeline per entry when it runs.
type Table struct {
	commands map[string]HandlerFunc
	fallback HandlerFunc
	unrouted UnroutedFunc
}

// NewTable creates an empty command table.
func NewTable() *Table {
	return &Table{
		commands: make(map[string]HandlerFunc),
	}
}

// Register binds handler to command. The command marker is added when
// missing. Registering the same command again replaces the handler.
func (t *Table) Register(command string, handler HandlerFunc) *Table {
	if handler == nil {
		logger.WithField("command", command).Warn("ignoring-nil-command-handler")
		return t
	}
	command = NormalizeCommand(command)
	if _, exists := t.commands[command]; exists {
		logger.WithField("command", command).Debug("command-handler-replaced")
	}
	t.commands[command] = handler
	return t
}

// RegisterFallback sets the handler for marker-prefixed tokens that match
// no registered command.
func (t *Table) RegisterFallback(handler HandlerFunc) *Table {
	t.fallback = handler
	return t
}

// OnUnrouted sets the consumer for updates that are not commands.
func (t *Table) OnUnrouted(handler UnroutedFunc) *Table {
	t.unrouted = handler
	return t
}

// Commands returns the registered command names in sorted order.
func (t *Table) Commands() []string {
	names := make([]string, 0, len(t.commands))
	for name := range t.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler returns the handler registered for command.
func (t *Table) Handler(command string) (HandlerFunc, bool) {
	h, ok := t.commands[NormalizeCommand(command)]
	return h, ok
}

// HasFallback reports whether a fallback handler is registered.
func (t *Table) HasFallback() bool {
	return t.fallback != nil
}

func (t *Table) logFields() logrus.Fields {
	return logrus.Fields{
		"commands":     t.Commands(),
		"has_fallback": t.fallback != nil,
		"has_unrouted": t.unrouted != nil,
	}
}
