package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from a backend service.
type APIError struct {
	Status   int
	Category string
	Message  string
}

func (e *APIError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %d %s: %s", e.Status, e.Category, e.Message)
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// parseError turns an error body into an APIError. Accepted shapes, in order:
// {"category": ..., "message": ...}, a Spring error document with "error" and
// "message", a legacy {"<category>": "<message>"} object, or plain text.
func parseError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && len(obj) > 0 {
		if msg, ok := obj["message"].(string); ok {
			e.Message = msg
			e.Category, _ = obj["category"].(string)
			if e.Category == "" {
				e.Category, _ = obj["error"].(string)
			}
			return e
		}
		key := firstKey(obj)
		e.Category = key
		e.Message = fmt.Sprint(obj[key])
		return e
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		e.Message = text
		return e
	}
	e.Message = http.StatusText(status)
	return e
}

// parseMessage reads a single-message success body: {"<key>": "<message>"}
// or plain text.
func parseMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && len(obj) > 0 {
		if msg, ok := obj["message"].(string); ok {
			return msg
		}
		return fmt.Sprint(obj[firstKey(obj)])
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}

func firstKey(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
