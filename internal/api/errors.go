package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for outbound calls
var (
	// ErrTransport means the remote service could not be reached or the
	// connection failed mid-request.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidEnvelope means the response was not JSON or had no boolean "ok" field.
	ErrInvalidEnvelope = errors.New("invalid response envelope")
	// ErrMissingResult means "ok" was true but "result" was absent.
	ErrMissingResult = errors.New("missing result in successful response")
	// ErrUnexpectedResult means "result" did not match the expected type.
	ErrUnexpectedResult = errors.New("unexpected result shape")
	// ErrMalformedParameters means the call parameters could not be framed
	// as a JSON object.
	ErrMalformedParameters = errors.New("malformed parameters")
	// ErrAttachmentUnreadable means the attachment source could not be read.
	ErrAttachmentUnreadable = errors.New("attachment unreadable")
)

// RemoteError is returned when the remote service answers with ok=false.
type RemoteError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *RemoteError) Error() string {
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		desc = "unknown error"
	}
	prefix := "telegram"
	if e.Method != "" {
		prefix = "telegram " + e.Method
	}
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", prefix, e.Code, desc)
	}
	return prefix + ": " + desc
}

// IsRemote reports whether err carries a rejection from the remote service
// and returns it.
func IsRemote(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}
