package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals first so a marshal failure can still become a 500
// instead of a half-written body.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	// Build response based on error details
	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Full error chain is mostly useful when a database error is the cause
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// WriteTimeoutError writes a standardized timeout error response
func (r Responder) WriteTimeoutError(w http.ResponseWriter, endpoint string) {
	r.WriteJSONStatus(w, http.StatusRequestTimeout, map[string]any{
		"error":    "Request timeout",
		"message":  "The request took too long to process",
		"status":   "timeout",
		"endpoint": endpoint,
	})
}

// CheckContextTimeout reports whether the request context is already done,
// writing the timeout response if so.
func (r Responder) CheckContextTimeout(w http.ResponseWriter, req *http.Request) bool {
	select {
	case <-req.Context().Done():
		r.WriteTimeoutError(w, req.URL.Path)
		return true
	default:
		return false
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
