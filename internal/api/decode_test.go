package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse_Success(t *testing.T) {
	result, err := DecodeResponse([]byte(`{"ok": true, "result": {"id": 1, "username": "BotName"}}`))
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"username":"BotName"}`, string(result))
}

func TestDecodeResponse_NullResultIsPresent(t *testing.T) {
	result, err := DecodeResponse([]byte(`{"ok":true,"result":null}`))
	require.NoError(t, err)
	assert.Equal(t, "null", string(result))
}

func TestDecodeResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `<html>502</html>`, ErrInvalidEnvelope},
		{"empty", ``, ErrInvalidEnvelope},
		{"missing ok", `{"result": []}`, ErrInvalidEnvelope},
		{"ok not bool", `{"ok": "yes", "result": []}`, ErrInvalidEnvelope},
		{"not an object", `[true]`, ErrInvalidEnvelope},
		{"missing result", `{"ok": true}`, ErrMissingResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeResponse_RemoteError(t *testing.T) {
	_, err := DecodeResponse([]byte(`{"ok":false,"description":"x"}`))

	remote, ok := IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, "x", remote.Description)
}

func TestDecodeResponse_RemoteErrorDetails(t *testing.T) {
	_, err := DecodeResponse([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`))

	remote, ok := IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 429, remote.Code)
	assert.Equal(t, 3, remote.RetryAfter)
	assert.Contains(t, remote.Error(), "Too Many Requests")
}

func TestDecodeResponse_RemoteErrorUnknown(t *testing.T) {
	_, err := DecodeResponse([]byte(`{"ok":false}`))

	remote, ok := IsRemote(err)
	require.True(t, ok)
	assert.Empty(t, remote.Description)
	assert.Contains(t, err.Error(), "unknown error")
}

func TestDecodeResponse_OptionalFieldsOfOtherTypes(t *testing.T) {
	result, err := DecodeResponse([]byte(`{"ok":true,"result":{"x":1},"description":5}`))
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(result))

	tests := []struct {
		name        string
		raw         string
		description string
		code        int
		retryAfter  int
	}{
		{"description object", `{"ok":false,"description":{"msg":"x"}}`, "", 0, 0},
		{"retry_after string", `{"ok":false,"description":"Too Many Requests","error_code":429,"parameters":{"retry_after":"5"}}`, "Too Many Requests", 429, 0},
		{"error_code string", `{"ok":false,"error_code":"400","description":"Bad"}`, "Bad", 0, 0},
		{"parameters not an object", `{"ok":false,"error_code":420,"parameters":[1]}`, "", 420, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse([]byte(tt.raw))
			require.NotErrorIs(t, err, ErrInvalidEnvelope)

			remote, ok := IsRemote(err)
			require.True(t, ok)
			assert.Equal(t, tt.description, remote.Description)
			assert.Equal(t, tt.code, remote.Code)
			assert.Equal(t, tt.retryAfter, remote.RetryAfter)
			if tt.description == "" {
				assert.Contains(t, remote.Error(), "unknown error")
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	params := map[string]any{"chat_id": float64(9), "text": "hello", "nested": map[string]any{"k": "v"}}
	req, err := EncodeJSON("sendMessage", params)
	require.NoError(t, err)

	raw := []byte(`{"ok":true,"result":` + string(req.Body) + `}`)
	result, err := DecodeResponse(raw)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(result, &got))
	assert.Equal(t, params, got)
}
