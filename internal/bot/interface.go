// Package bot implements update ingestion and command dispatch for a
// Telegram bot using long polling.
//
// The pieces, leaves first:
//
//   - Tracker: the next update id to request, advanced with a max-merge
//   - Table: command name -> handler, plus an optional fallback and an
//     optional consumer for updates that are not commands at all
//   - Router: decides where a single update goes and delivers it
//   - pipelines: one goroutine per table entry draining its own mailbox
//   - Poller: calls getUpdates on a ticker and feeds the router
//   - Dispatcher: builds all of the above from a Table and runs them
//
// # Usage
//
//	table := bot.NewTable().
//	    Register("/echo", func(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
//	        return b.Reply(ctx, msg, msg.Text)
//	    })
//	d := bot.NewDispatcher(bot.Config{Token: token}, client, table)
//	err := d.Run(ctx)
//
// # Thread Safety
//
// The Table must be fully built before the Dispatcher starts; it is read
// only afterwards. Handlers of different commands run concurrently, while
// messages for the same command are handled one at a time in arrival order.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandlerFunc handles one message delivered to a command or the fallback.
// A returned error is logged; it never stops the pipeline.
type HandlerFunc func(ctx context.Context, b *Bot, msg tgbotapi.Message) error

// UnroutedFunc consumes updates that were not recognized as commands.
type UnroutedFunc func(ctx context.Context, b *Bot, update tgbotapi.Update) error
