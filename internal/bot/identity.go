package bot

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/pkg/constants"
)

// Identity holds the per-session values shared by every handler call.
// It is not modified once the dispatcher has started.
type Identity struct {
	Key            string
	Name           string // username without the leading "@", empty if unknown
	UpdateInterval time.Duration
	Timeout        time.Duration
}

// Mention returns the "@name" suffix used in group chats, or "" when the
// name is unknown.
func (i Identity) Mention() string {
	if i.Name == "" {
		return ""
	}
	return constants.MentionSeparator + i.Name
}

// Bot is what a handler receives alongside each message: the identity and
// the means to make further calls.
type Bot struct {
	identity Identity
	client   *api.Client
	offset   *Tracker
}

// NewBot creates a handler context outside of a running Dispatcher, for
// example to drive handlers directly.
func NewBot(identity Identity, client *api.Client) *Bot {
	return &Bot{
		identity: identity,
		client:   client,
		offset:   NewTracker(0),
	}
}

// Identity returns the session identity.
func (b *Bot) Identity() Identity {
	return b.identity
}

// API returns the client for outbound calls.
func (b *Bot) API() *api.Client {
	return b.client
}

// Offset returns the offset the next poll will use.
func (b *Bot) Offset() uint64 {
	return b.offset.Value()
}

// Reply sends text to the chat msg came from.
func (b *Bot) Reply(ctx context.Context, msg tgbotapi.Message, text string) error {
	if msg.Chat == nil {
		return fmt.Errorf("message %d has no chat", msg.MessageID)
	}
	// the limit counts characters, not bytes
	if utf8.RuneCountInString(text) > constants.MaxTelegramMessageLength {
		text = string([]rune(text)[:constants.MaxTelegramMessageLength])
	}
	_, err := b.client.SendMessage(ctx, api.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	})
	return err
}
