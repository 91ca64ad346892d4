package service

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is the single error type returned by DataPulseService. Only the
// message is meant for display.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func transportError(op string, err error) *APIError {
	return &APIError{
		Op:      op,
		Message: fmt.Sprintf("%s failed: could not reach server", op),
		cause:   err,
	}
}

func newAPIError(op string, status int, body []byte) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: status,
		Message:    errorMessage(op, status, body),
	}
}

func errorMessage(op string, status int, body []byte) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		if detail := res.Get("detail"); detail.Exists() {
			if !detail.IsArray() {
				return gjson.GetBytes(body, "@ugly").String()
			}
			var msgs []string
			for _, d := range detail.Array() {
				if msg := d.Get("msg"); msg.Exists() {
					msgs = append(msgs, msg.String())
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, ", ")
			}
		}
		if msg := res.Get("message"); msg.Type == gjson.String && msg.String() != "" {
			return msg.String()
		}
	}
	return fmt.Sprintf("%s failed (status %d)", op, status)
}
