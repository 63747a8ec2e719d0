package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TransportError is a network failure or a non-2xx response from the
// inventory service. Message holds the server-supplied explanation when the
// response body carried one.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "inventory %s", e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var terr *TransportError
	if errors.As(err, &terr) && terr.Message != "" {
		return terr.Message, true
	}
	return "", false
}

// decodeServerMessage tries the known error body shapes:
// {"message": ".."}, {"error": {"message": ".."}} and {"error": ".."}.
func decodeServerMessage(body []byte) string {
	var shape struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return ""
	}
	if shape.Message != "" {
		return shape.Message
	}
	if len(shape.Error) == 0 {
		return ""
	}

	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(shape.Error, &nested) == nil && nested.Message != "" {
		return nested.Message
	}
	var text string
	if json.Unmarshal(shape.Error, &text) == nil {
		return text
	}
	return ""
}
