package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/conectaext/conecta-backend/errs"
)

// Every handler response takes one of two shapes: a success envelope with an
// optional data payload, or a failure envelope carrying the mapped status.

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorDetail struct {
	Details string `json:"details"`
	Status  int    `json:"status"`
}

type errorEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   errorDetail `json:"error"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess writes the success envelope with the given status (200 or 201).
func (r Responder) WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	r.writeJSON(w, status, successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError maps a domain error onto the failure envelope. Unrecognized
// errors become a generic 500; the underlying detail string is attached for
// diagnostics but internals never leak beyond it.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, errorEnvelope{
			Message: "internal server error",
			Error: errorDetail{
				Details: err.Error(),
				Status:  http.StatusInternalServerError,
			},
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Err(apiErr.Cause).Int("status", apiErr.StatusCode).Msg(apiErr.Details)
	}

	message := apiErr.Details
	if message == "" {
		message = apiErr.Error()
	}

	r.writeJSON(w, apiErr.StatusCode, errorEnvelope{
		Message: message,
		Error: errorDetail{
			Details: message,
			Status:  apiErr.StatusCode,
		},
	})
}
