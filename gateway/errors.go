package gateway

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// failure describes how one operation reports a non-2xx response: a fixed
// message per status, then a message extracted from the body, then fallback.
type failure struct {
	fallback string
	status   map[int]string
	extract  func(body []byte) string
}

func (f failure) err(status int, body []byte) *domain.Error {
	code := codeForStatus(status)
	if msg, ok := f.status[status]; ok {
		return domain.NewError(code, msg)
	}
	if f.extract != nil {
		if msg := f.extract(body); msg != "" {
			return domain.NewError(code, msg)
		}
	}
	return domain.NewError(code, f.fallback)
}

func codeForStatus(status int) domain.ErrorCode {
	switch status {
	case fasthttp.StatusBadRequest, fasthttp.StatusUnprocessableEntity:
		return domain.ErrCodeInvalid
	case fasthttp.StatusUnauthorized:
		return domain.ErrCodeUnauthorized
	case fasthttp.StatusForbidden:
		return domain.ErrCodeForbidden
	case fasthttp.StatusNotFound:
		return domain.ErrCodeNotFound
	case fasthttp.StatusConflict:
		return domain.ErrCodeConflict
	default:
		return domain.ErrCodeUpstream
	}
}

// jsonMessage returns the first string-valued field of a JSON object body.
func jsonMessage(fields ...string) func([]byte) string {
	return func(body []byte) string {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(body, &payload); err != nil {
			return ""
		}
		for _, field := range fields {
			var value string
			if raw, ok := payload[field]; ok && json.Unmarshal(raw, &value) == nil && value != "" {
				return value
			}
		}
		return ""
	}
}

var problemMessage = jsonMessage("message", "detail", "title")

// validationMessage extends problemMessage with the flattened "errors" map of a
// validation problem response.
func validationMessage(body []byte) string {
	if msg := problemMessage(body); msg != "" {
		return msg
	}
	var payload struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return ""
	}
	keys := make([]string, 0, len(payload.Errors))
	for k := range payload.Errors {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var messages []string
	for _, k := range keys {
		messages = append(messages, payload.Errors[k]...)
	}
	return strings.Join(messages, ", ")
}

func rawText(body []byte) string {
	return strings.TrimSpace(string(body))
}
