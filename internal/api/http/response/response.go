// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/paperdesk/internal/apierrors"
)

// Envelope wraps a successful result.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope wraps a failure.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Data    any      `json:"data"`
}

// JSON writes data inside a success envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = struct{}{}
	}
	write(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes err inside a failure envelope with the status of its kind.
// Unclassified errors are rendered as a generic internal error.
func Error(w http.ResponseWriter, err error) {
	apiErr := apierrors.From(err)
	errs := apiErr.Errors
	if errs == nil {
		errs = []string{}
	}
	write(w, apiErr.HTTPStatus(), ErrorEnvelope{
		Success: false,
		Message: apiErr.Message,
		Errors:  errs,
		Data:    nil,
	})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
