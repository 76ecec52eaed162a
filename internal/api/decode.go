package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the generic wrapper around every endpoint's answer.
// Only ok is typed. The optional fields stay raw and are read
// best-effort, so an unexpected type leaves them unset.
type envelope struct {
	OK          *bool           `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description json.RawMessage `json:"description"`
	ErrorCode   json.RawMessage `json:"error_code"`
	Parameters  json.RawMessage `json:"parameters"`
}

// DecodeResponse unwraps a raw response body. On success it returns the
// "result" field re-serialized as compact JSON for the caller to decode.
func DecodeResponse(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if env.OK == nil {
		return nil, fmt.Errorf("%w: missing ok field", ErrInvalidEnvelope)
	}

	if *env.OK {
		// json.RawMessage is left nil when the key is absent and holds
		// "null" when the key is present with a null value.
		if env.Result == nil {
			return nil, ErrMissingResult
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, env.Result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
		return compact.Bytes(), nil
	}

	remote := &RemoteError{}
	readOptional(env.Description, &remote.Description)
	readOptional(env.ErrorCode, &remote.Code)

	var params struct {
		RetryAfter json.RawMessage `json:"retry_after"`
	}
	readOptional(env.Parameters, &params)
	readOptional(params.RetryAfter, &remote.RetryAfter)

	return nil, remote
}

// readOptional decodes raw into v, leaving v untouched when raw is
// absent or of another type.
func readOptional(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}
