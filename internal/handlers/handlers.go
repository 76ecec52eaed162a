// Package handlers provides the stock commands served by botpoll and builds
// a bot.Table from configuration.
//
// Available commands:
//
//   - /reply <text>: echoes the text back, "<empty>" when there is none
//   - /location <lat> <lon>: sends a map point
//   - /get_my_photo: sends the caller's first profile photo
//   - /send: sends a short poem as an in-memory document
//   - /send_self: sends a file from disk
//
// Unknown commands can be answered with a fixed reply, and updates that are
// not commands are either answered (inline queries) or logged.
package handlers

import (
	"context"
	"errors"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/bot"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

// Command names
const (
	CommandReply      = "/reply"
	CommandLocation   = "/location"
	CommandMyPhoto    = "/get_my_photo"
	CommandSendMemory = "/send"
	CommandSendSelf   = "/send_self"
)

// Options selects which handlers NewTable registers.
type Options struct {
	// Enabled lists command names to register; empty registers all of them.
	Enabled []string
	// SelfFile is the file sent by /send_self. The command is skipped when empty.
	SelfFile string
	// ReplyUnknown answers unknown commands with a fixed text.
	ReplyUnknown bool
	// AnswerInline answers inline queries; other updates are logged either way.
	AnswerInline bool
	// AllowedUsers restricts every command to these user ids when non-empty.
	AllowedUsers []int64
}

// NewTable builds the command table described by opts.
func NewTable(opts Options) *bot.Table {
	table := bot.NewTable()

	available := map[string]bot.HandlerFunc{
		CommandReply:      Reply,
		CommandLocation:   Location,
		CommandMyPhoto:    MyPhoto,
		CommandSendMemory: SendMemory,
	}
	if opts.SelfFile != "" {
		available[CommandSendSelf] = SendSelf(opts.SelfFile)
	}

	enabled := make([]string, 0, len(opts.Enabled))
	for _, name := range opts.Enabled {
		name = bot.NormalizeCommand(name)
		if _, ok := available[name]; !ok {
			logger.WithField("command", name).Warn("enabled-command-not-available")
			continue
		}
		enabled = append(enabled, name)
	}

	for name, handler := range available {
		if len(opts.Enabled) > 0 && !slices.Contains(enabled, name) {
			continue
		}
		table.Register(name, Restrict(opts.AllowedUsers, handler))
	}

	if opts.ReplyUnknown {
		table.RegisterFallback(Restrict(opts.AllowedUsers, Unknown))
	}
	table.OnUnrouted(Unrouted(opts.AnswerInline))
	return table
}

// Restrict drops messages from users that are not in allowed. An empty
// list allows everyone.
func Restrict(allowed []int64, handler bot.HandlerFunc) bot.HandlerFunc {
	if len(allowed) == 0 {
		return handler
	}
	return func(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
		if msg.From == nil || !slices.Contains(allowed, msg.From.ID) {
			fields := logrus.Fields{"message_id": msg.MessageID}
			if msg.From != nil {
				fields["user_id"] = msg.From.ID
			}
			logger.WithFields(fields).Warn("unauthorized-user-ignored")
			return nil
		}
		return handler(ctx, b, msg)
	}
}

// replyFailure tells the chat that a call was rejected and returns err
// together with any failure to send the notice.
func replyFailure(ctx context.Context, b *bot.Bot, msg tgbotapi.Message, err error) error {
	remote, ok := api.IsRemote(err)
	if !ok {
		return err
	}
	if replyErr := b.Reply(ctx, msg, "Telegram error: "+remote.Description); replyErr != nil {
		return errors.Join(err, replyErr)
	}
	return err
}
