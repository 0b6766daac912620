package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for responses with status >= 400.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ParseError reports a response body that does not have the expected shape.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// Message returns the text to show the operator for err: the server-provided
// message when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" && se.Message != http.StatusText(se.Status) {
		return se.Message
	}
	return fallback
}

// serverMessage extracts "message" or "error" from a JSON error payload.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	return http.StatusText(status)
}
