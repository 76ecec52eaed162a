package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/botpoll/internal/api"
)

// reply is one scripted transport answer.
type reply struct {
	body string
	err  error
}

// fakeTransport serves getMe from a fixed body and getUpdates from a
// script. Once the script is exhausted getUpdates answers with an empty
// batch. Every other call is recorded and acknowledged.
type fakeTransport struct {
	mu      sync.Mutex
	me      string
	updates []reply
	polls   []api.GetUpdatesParams
	sent    []*api.Request
}

func (f *fakeTransport) Do(ctx context.Context, req *api.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch req.Method {
	case api.MethodGetMe:
		if f.me == "" {
			return nil, fmt.Errorf("%w: getMe: connection refused", api.ErrTransport)
		}
		return []byte(f.me), nil
	case api.MethodGetUpdates:
		var params api.GetUpdatesParams
		_ = json.Unmarshal(req.Body, &params)
		f.polls = append(f.polls, params)
		if len(f.updates) == 0 {
			return []byte(`{"ok":true,"result":[]}`), nil
		}
		next := f.updates[0]
		f.updates = f.updates[1:]
		if next.err != nil {
			return nil, next.err
		}
		return []byte(next.body), nil
	default:
		f.sent = append(f.sent, req)
		return []byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`), nil
	}
}

func (f *fakeTransport) pollOffsets() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint64, len(f.polls))
	for i, p := range f.polls {
		out[i] = p.Offset
	}
	return out
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// batch renders a successful getUpdates body from (id, text) pairs.
// An empty text produces an update without a message.
func batch(items ...any) string {
	var updates []map[string]any
	for i := 0; i+1 < len(items); i += 2 {
		u := map[string]any{"update_id": items[i]}
		if text := items[i+1].(string); text != "" {
			u["message"] = map[string]any{
				"message_id": items[i],
				"date":       0,
				"chat":       map[string]any{"id": 500, "type": "group"},
				"from":       map[string]any{"id": 7, "is_bot": false, "first_name": "Ann"},
				"text":       text,
			}
		}
		updates = append(updates, u)
	}
	if updates == nil {
		updates = []map[string]any{}
	}
	b, _ := json.Marshal(map[string]any{"ok": true, "result": updates})
	return string(b)
}

func textUpdate(id int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: id,
		Message: &tgbotapi.Message{
			MessageID: id,
			Chat:      &tgbotapi.Chat{ID: 500, Type: "group"},
			From:      &tgbotapi.User{ID: 7, FirstName: "Ann"},
			Text:      text,
		},
	}
}

func testBot(name string, transport api.Transport) *Bot {
	return &Bot{
		identity: Identity{Key: "123:token", Name: name, UpdateInterval: time.Second, Timeout: time.Second},
		client:   api.NewClient(transport, time.Second),
		offset:   NewTracker(0),
	}
}

func noopHandler(context.Context, *Bot, tgbotapi.Message) error { return nil }

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
