package bot

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Mention(t *testing.T) {
	assert.Equal(t, "@BotName", Identity{Name: "BotName"}.Mention())
}

func TestBot_ReplyTruncatesByCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short ascii", "hello", "hello"},
		{"multibyte under limit", strings.Repeat("é", 3000), strings.Repeat("é", 3000)},
		{"multibyte over limit", strings.Repeat("é", 5000), strings.Repeat("é", constants.MaxTelegramMessageLength)},
		{"ascii over limit", strings.Repeat("a", 5000), strings.Repeat("a", constants.MaxTelegramMessageLength)},
		{"emoji at boundary", strings.Repeat("a", constants.MaxTelegramMessageLength-1) + "😀😀", strings.Repeat("a", constants.MaxTelegramMessageLength-1) + "😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			b := testBot("BotName", transport)
			msg := tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: 500}}

			require.NoError(t, b.Reply(context.Background(), msg, tt.text))

			require.Equal(t, 1, transport.sentCount())
			var params api.SendMessageParams
			require.NoError(t, json.Unmarshal(transport.sent[0].Body, &params))
			assert.True(t, utf8.ValidString(params.Text))
			assert.Equal(t, tt.want, params.Text)
		})
	}
}

func TestBot_ReplyWithoutChat(t *testing.T) {
	transport := &fakeTransport{}
	b := testBot("BotName", transport)

	err := b.Reply(context.Background(), tgbotapi.Message{MessageID: 3}, "hi")
	assert.Error(t, err)
	assert.Equal(t, 0, transport.sentCount())
}
