package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/keepmind9/botpoll/pkg/constants"
	"github.com/sirupsen/logrus"
)

// Client sends calls through a Transport and decodes the envelope.
// It is safe for concurrent use.
type Client struct {
	transport Transport
	timeout   time.Duration
}

// NewClient creates a client. timeout bounds how long the remote side may
// withhold a response; calls whose context has no deadline get
// timeout plus a small grace period.
func NewClient(transport Transport, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultCallTimeout
	}
	return &Client{
		transport: transport,
		timeout:   timeout,
	}
}

// Timeout returns the configured call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do sends req and returns the decoded result text.
func (c *Client) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout+constants.CallTimeoutGrace)
		defer cancel()
	}

	log := logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"method":     req.Method,
	})
	log.WithField("body_len", len(req.Body)).Debug("api-call-sending")

	raw, err := c.transport.Do(ctx, req)
	if err != nil {
		log.WithField("error", err).Debug("api-call-transport-failed")
		return nil, err
	}

	result, err := DecodeResponse(raw)
	if err != nil {
		if remote, ok := IsRemote(err); ok {
			remote.Method = req.Method
		}
		log.WithField("error", err).Debug("api-call-rejected")
		return nil, fmt.Errorf("%s: %w", req.Method, err)
	}

	log.WithField("result_len", len(result)).Debug("api-call-succeeded")
	return result, nil
}

// Call sends params as a JSON request.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req, err := EncodeJSON(method, params)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Upload sends params together with a single file stored under field.
func (c *Client) Upload(ctx context.Context, method string, params any, field string, file tgbotapi.RequestFileData) (json.RawMessage, error) {
	req, err := NewMultipartRequest(method, params, field, file)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Invoke calls method with JSON params and decodes the result into T.
func Invoke[T any](ctx context.Context, c *Client, method string, params any) (T, error) {
	var out T
	raw, err := c.Call(ctx, method, params)
	if err != nil {
		return out, err
	}
	return decodeResult[T](method, raw)
}

// InvokeUpload is Invoke with an attachment.
func InvokeUpload[T any](ctx context.Context, c *Client, method string, params any, field string, file tgbotapi.RequestFileData) (T, error) {
	var out T
	raw, err := c.Upload(ctx, method, params, field, file)
	if err != nil {
		return out, err
	}
	return decodeResult[T](method, raw)
}

func decodeResult[T any](method string, raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrUnexpectedResult, method, err)
	}
	return out, nil
}
