package api

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Endpoint names
const (
	MethodGetMe                = "getMe"
	MethodGetUpdates           = "getUpdates"
	MethodSendMessage          = "sendMessage"
	MethodSendLocation         = "sendLocation"
	MethodSendDocument         = "sendDocument"
	MethodSendPhoto            = "sendPhoto"
	MethodGetUserProfilePhotos = "getUserProfilePhotos"
	MethodAnswerInlineQuery    = "answerInlineQuery"
)

// GetUpdatesParams selects the next batch of updates.
type GetUpdatesParams struct {
	Offset         uint64   `json:"offset"`
	Timeout        int      `json:"timeout"`
	Limit          int      `json:"limit,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// SendMessageParams is the body of sendMessage.
type SendMessageParams struct {
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ParseMode        string `json:"parse_mode,omitempty"`
	ReplyToMessageID int    `json:"reply_to_message_id,omitempty"`
}

// SendLocationParams is the body of sendLocation.
type SendLocationParams struct {
	ChatID    int64   `json:"chat_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SendFileParams carries the text fields shared by the file-sending endpoints.
type SendFileParams struct {
	ChatID  int64  `json:"chat_id"`
	Caption string `json:"caption,omitempty"`
}

// GetUserProfilePhotosParams is the body of getUserProfilePhotos.
type GetUserProfilePhotosParams struct {
	UserID int64 `json:"user_id"`
	Offset int   `json:"offset,omitempty"`
	Limit  int   `json:"limit,omitempty"`
}

// AnswerInlineQueryParams is the body of answerInlineQuery.
type AnswerInlineQueryParams struct {
	InlineQueryID string `json:"inline_query_id"`
	Results       []any  `json:"results"`
	CacheTime     int    `json:"cache_time,omitempty"`
	IsPersonal    bool   `json:"is_personal,omitempty"`
}

// GetMe returns the bot's own user record.
func (c *Client) GetMe(ctx context.Context) (tgbotapi.User, error) {
	return Invoke[tgbotapi.User](ctx, c, MethodGetMe, nil)
}

// GetUpdates long-polls for updates with id >= params.Offset.
func (c *Client) GetUpdates(ctx context.Context, params GetUpdatesParams) ([]tgbotapi.Update, error) {
	return Invoke[[]tgbotapi.Update](ctx, c, MethodGetUpdates, params)
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) (tgbotapi.Message, error) {
	return Invoke[tgbotapi.Message](ctx, c, MethodSendMessage, params)
}

// SendLocation sends a map point.
func (c *Client) SendLocation(ctx context.Context, params SendLocationParams) (tgbotapi.Message, error) {
	return Invoke[tgbotapi.Message](ctx, c, MethodSendLocation, params)
}

// SendDocument sends a general file from disk, memory or an existing file id.
func (c *Client) SendDocument(ctx context.Context, params SendFileParams, file tgbotapi.RequestFileData) (tgbotapi.Message, error) {
	return InvokeUpload[tgbotapi.Message](ctx, c, MethodSendDocument, params, "document", file)
}

// SendPhoto sends a photo from disk, memory or an existing file id.
func (c *Client) SendPhoto(ctx context.Context, params SendFileParams, file tgbotapi.RequestFileData) (tgbotapi.Message, error) {
	return InvokeUpload[tgbotapi.Message](ctx, c, MethodSendPhoto, params, "photo", file)
}

// GetUserProfilePhotos lists a user's profile pictures.
func (c *Client) GetUserProfilePhotos(ctx context.Context, params GetUserProfilePhotosParams) (tgbotapi.UserProfilePhotos, error) {
	return Invoke[tgbotapi.UserProfilePhotos](ctx, c, MethodGetUserProfilePhotos, params)
}

// AnswerInlineQuery replies to an inline query.
func (c *Client) AnswerInlineQuery(ctx context.Context, params AnswerInlineQueryParams) (bool, error) {
	return Invoke[bool](ctx, c, MethodAnswerInlineQuery, params)
}
