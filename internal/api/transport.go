package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/keepmind9/botpoll/pkg/constants"
)

// Transport sends a framed request and returns the raw response body.
type Transport interface {
	Do(ctx context.Context, req *Request) ([]byte, error)
}

// HTTPTransport posts requests to the Bot API over HTTPS.
type HTTPTransport struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewHTTPTransport creates a transport for the given API key.
// An empty baseURL selects the public Telegram endpoint.
func NewHTTPTransport(httpClient *http.Client, baseURL, token string) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = constants.DefaultAPIURL
	}
	return &HTTPTransport{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Do performs the POST. Response bodies are returned for every HTTP status
// because the API reports rejections inside the envelope.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) ([]byte, error) {
	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, req.Method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: create request: %v", ErrTransport, req.Method, err)
	}
	httpReq.Header.Set("Content-Type", req.ContentType)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		// the URL embeds the token, keep it out of the error text
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, req.Method, redact(err, t.token))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrTransport, req.Method, err)
	}
	return raw, nil
}

func redact(err error, token string) string {
	msg := err.Error()
	if token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, token, "***")
}
