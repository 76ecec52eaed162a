// Package api frames, sends and decodes calls to the Telegram Bot API.
//
// A call goes through three steps: a Request is built (plain JSON or
// multipart with a single attachment), handed to a Transport, and the raw
// response text is unwrapped by DecodeResponse. Client glues the three
// together and exposes a generic typed helper for any endpoint.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const contentTypeJSON = "application/json"

// Request is a fully framed outbound call. It is built, sent and discarded.
type Request struct {
	Method      string
	ContentType string
	Body        []byte
}

// NewJSONRequest wraps an already serialized JSON parameter object.
func NewJSONRequest(method string, body []byte) *Request {
	return &Request{
		Method:      method,
		ContentType: contentTypeJSON,
		Body:        body,
	}
}

// EncodeJSON serializes params and wraps them in a JSON request.
// A nil params value produces an empty object.
func EncodeJSON(method string, params any) (*Request, error) {
	if params == nil {
		return NewJSONRequest(method, []byte("{}")), nil
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedParameters, method, err)
	}
	return NewJSONRequest(method, body), nil
}

// NewMultipartRequest frames params as text fields plus file as the single
// binary part stored under field. params must serialize to a JSON object.
//
// Files that are already known to the remote side (file ids, URLs) need no
// upload; they are put into the parameter object and sent as plain JSON.
func NewMultipartRequest(method string, params any, field string, file tgbotapi.RequestFileData) (*Request, error) {
	fields, err := paramFields(method, params)
	if err != nil {
		return nil, err
	}

	if file == nil {
		return nil, fmt.Errorf("%w: %s: no file for field %q", ErrAttachmentUnreadable, method, field)
	}

	if !file.NeedsUpload() {
		var obj map[string]json.RawMessage
		if params != nil {
			if err := remarshal(params, &obj); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedParameters, method, err)
			}
		}
		if obj == nil {
			obj = make(map[string]json.RawMessage, 1)
		}
		ref, _ := json.Marshal(file.SendData())
		obj[field] = ref
		return EncodeJSON(method, obj)
	}

	name, reader, err := file.UploadData()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAttachmentUnreadable, method, err)
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := mw.WriteField(key, fields[key]); err != nil {
			return nil, fmt.Errorf("%s: write field %s: %w", method, key, err)
		}
	}

	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = field
	}
	part, err := mw.CreateFormFile(field, name)
	if err != nil {
		return nil, fmt.Errorf("%s: create file part: %w", method, err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAttachmentUnreadable, method, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: close multipart body: %w", method, err)
	}

	return &Request{
		Method:      method,
		ContentType: mw.FormDataContentType(),
		Body:        body.Bytes(),
	}, nil
}

// paramFields flattens a JSON object into text fields. Strings keep their
// value, everything else is written as its JSON text.
func paramFields(method string, params any) (tgbotapi.Params, error) {
	var obj map[string]json.RawMessage
	if params != nil {
		if err := remarshal(params, &obj); err != nil {
			return nil, fmt.Errorf("%w: %s: parameters are not a JSON object: %v", ErrMalformedParameters, method, err)
		}
	}
	if obj == nil && params != nil {
		// "null" decodes into a nil map without an error
		return nil, fmt.Errorf("%w: %s: parameters are not a JSON object", ErrMalformedParameters, method)
	}

	fields := make(tgbotapi.Params, len(obj))
	for key, raw := range obj {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			fields[key] = s
			continue
		}
		fields[key] = string(raw)
	}
	return fields, nil
}

func remarshal(in any, out any) error {
	var raw []byte
	switch v := in.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, out)
}
