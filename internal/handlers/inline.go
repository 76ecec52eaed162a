package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/bot"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

const (
	inlineTitle   = "Test"
	inlineText    = "This is a test"
	inlineLinkURL = "http://wikipedia.org"
	inlineLink    = "Wikipedia"
)

// Unrouted returns the consumer for updates that are not commands. Inline
// queries are answered when answerInline is set; everything else is logged.
func Unrouted(answerInline bool) bot.UnroutedFunc {
	return func(ctx context.Context, b *bot.Bot, update tgbotapi.Update) error {
		if answerInline && update.InlineQuery != nil {
			return AnswerInline(ctx, b, update.InlineQuery)
		}

		fields := logrus.Fields{
			"update_id": update.UpdateID,
			"kind":      updateKind(update),
		}
		if msg := update.Message; msg != nil {
			fields["message_id"] = msg.MessageID
			if msg.Chat != nil {
				fields["chat_id"] = msg.Chat.ID
			}
			if msg.Text != "" {
				fields["text"] = msg.Text
			}
		}
		logger.WithFields(fields).Info("update-received")
		return nil
	}
}

// AnswerInline answers query with a single article carrying a link button.
func AnswerInline(ctx context.Context, b *bot.Bot, query *tgbotapi.InlineQuery) error {
	article := tgbotapi.NewInlineQueryResultArticle(uuid.NewString(), inlineTitle, inlineText)
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(inlineLink, inlineLinkURL)),
	)
	article.ReplyMarkup = &markup

	_, err := b.API().AnswerInlineQuery(ctx, api.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       []any{article},
		IsPersonal:    true,
	})
	if err != nil {
		logger.WithFields(logrus.Fields{
			"query_id": query.ID,
			"error":    err,
		}).Warn("failed-to-answer-inline-query")
	}
	return err
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.Message != nil:
		return "message"
	case update.EditedMessage != nil:
		return "edited_message"
	case update.ChannelPost != nil:
		return "channel_post"
	case update.EditedChannelPost != nil:
		return "edited_channel_post"
	case update.InlineQuery != nil:
		return "inline_query"
	case update.ChosenInlineResult != nil:
		return "chosen_inline_result"
	case update.CallbackQuery != nil:
		return "callback_query"
	default:
		return "other"
	}
}
