package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is returned for any non-2xx response. Message is the
// server-provided text when one could be parsed, otherwise a generic
// "request failed with status N".
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	// Parsed reports whether Message came from the response body.
	Parsed bool
}

func (e *StatusError) Error() string {
	return e.Message
}

// TransportError wraps a failure to reach the API at all.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach API (%s %s): %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseErrorMessage extracts a human-readable message from an error body.
// FastAPI puts it under "detail", either as a string or as a list of
// validation items; the generic exception handler uses "message".
func parseErrorMessage(body []byte) (string, bool) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", false
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s, true
		}
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			var msgs []string
			for _, it := range items {
				if it.Msg == "" {
					continue
				}
				if field := lastLoc(it.Loc); field != "" {
					msgs = append(msgs, field+": "+it.Msg)
				} else {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; "), true
			}
		}
	}

	if eb.Message != "" {
		return eb.Message, true
	}
	return "", false
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok && s != "body" {
		return s
	}
	return ""
}
