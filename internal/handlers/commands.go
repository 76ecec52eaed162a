package handlers

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/bot"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

//go:embed poem.txt
var poem []byte

// Reply texts
const (
	textEmpty          = "<empty>"
	textUnknownCommand = "Unknown command"
	textBadLocation    = "Couldn't parse the location!"
	textNoPhoto        = "No photo exists!"
	poemName           = "poem.txt"
	poemCaption        = "The Chaos"
)

func chatOf(msg tgbotapi.Message) (int64, error) {
	if msg.Chat == nil {
		return 0, fmt.Errorf("message %d has no chat", msg.MessageID)
	}
	return msg.Chat.ID, nil
}

// Reply echoes the command arguments.
func Reply(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
	text := msg.Text
	if text == "" {
		text = textEmpty
	}
	return b.Reply(ctx, msg, text)
}

// Unknown answers commands that nothing else handles.
func Unknown(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
	return b.Reply(ctx, msg, textUnknownCommand)
}

// Location sends the point given as "<lat> <lon>".
func Location(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
	chatID, err := chatOf(msg)
	if err != nil {
		return err
	}
	lat, lon, ok := parseLocation(msg.Text)
	if !ok {
		return b.Reply(ctx, msg, textBadLocation)
	}

	_, err = b.API().SendLocation(ctx, api.SendLocationParams{
		ChatID:    chatID,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return replyFailure(ctx, b, msg, err)
	}
	return nil
}

// parseLocation reads the first two fields of text as coordinates.
func parseLocation(text string) (float64, float64, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// MyPhoto sends the sender's first profile photo back by file id.
func MyPhoto(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
	chatID, err := chatOf(msg)
	if err != nil {
		return err
	}
	if msg.From == nil {
		return b.Reply(ctx, msg, textNoPhoto)
	}

	photos, err := b.API().GetUserProfilePhotos(ctx, api.GetUserProfilePhotosParams{
		UserID: msg.From.ID,
		Limit:  1,
	})
	if err != nil {
		return replyFailure(ctx, b, msg, err)
	}
	if photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return b.Reply(ctx, msg, textNoPhoto)
	}

	_, err = b.API().SendPhoto(ctx, api.SendFileParams{ChatID: chatID},
		tgbotapi.FileID(photos.Photos[0][0].FileID))
	if err != nil {
		return replyFailure(ctx, b, msg, err)
	}
	return nil
}

// SendMemory uploads a document held in memory.
func SendMemory(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
	chatID, err := chatOf(msg)
	if err != nil {
		return err
	}
	_, err = b.API().SendDocument(ctx, api.SendFileParams{
		ChatID:  chatID,
		Caption: poemCaption,
	}, tgbotapi.FileBytes{Name: poemName, Bytes: poem})
	if err != nil {
		return replyFailure(ctx, b, msg, err)
	}
	return nil
}

// SendSelf returns a handler uploading the file at path.
func SendSelf(path string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, msg tgbotapi.Message) error {
		chatID, err := chatOf(msg)
		if err != nil {
			return err
		}
		_, err = b.API().SendDocument(ctx, api.SendFileParams{ChatID: chatID}, tgbotapi.FilePath(path))
		if err != nil {
			logger.WithFields(logrus.Fields{
				"path":  path,
				"error": err,
			}).Warn("failed-to-send-file")
			return replyFailure(ctx, b, msg, fmt.Errorf("send %s: %w", path, err))
		}
		return nil
	}
}
