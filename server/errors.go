package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
	"github.com/padangco/seagreen/render"
)

// Error codes in JSON error bodies.
const (
	CodeSessionNotFound    = "session_not_found"
	CodeInvalidFilterValue = "invalid_filter_value"
	CodeInvalidRequest     = "invalid_request"
	CodeUnknownView        = "unknown_view"
	CodeUnknownChart       = "unknown_chart"
	CodeUnknownColumn      = "unknown_column"
	CodeSelectionRequired  = "selection_required"
	CodeNothingToRender    = "nothing_to_render"
	CodeInternal           = "internal"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

// writeError maps err to a status and code.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Message: err.Error()}
	status := http.StatusInternalServerError

	var invalid *filter.InvalidFilterValue
	switch {
	case errors.As(err, &invalid):
		status, body.Error = http.StatusBadRequest, CodeInvalidFilterValue
		body.Field, body.Value = invalid.Field, invalid.Value
	case errors.Is(err, dashboard.ErrSessionNotFound):
		status, body.Error = http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, dashboard.ErrUnknownView):
		status, body.Error = http.StatusNotFound, CodeUnknownView
	case errors.Is(err, render.ErrUnknownChart):
		status, body.Error = http.StatusNotFound, CodeUnknownChart
	case errors.Is(err, engine.ErrUnknownColumn):
		status, body.Error = http.StatusBadRequest, CodeUnknownColumn
	case engine.IsSelectionRequired(err):
		status, body.Error = http.StatusConflict, CodeSelectionRequired
	case errors.Is(err, render.ErrNothingToRender):
		status, body.Error = http.StatusConflict, CodeNothingToRender
	case errors.Is(err, errBadRequest):
		status, body.Error = http.StatusBadRequest, CodeInvalidRequest
	default:
		body.Error = CodeInternal
		log.Printf("❌ request failed: %v", err)
	}
	writeJSON(w, status, body)
}

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// writeBody writes an already encoded response body. The status line is
// sent by then, so a failed write can only be logged.
func writeBody(w http.ResponseWriter, body []byte) {
	if _, err := w.Write(body); err != nil {
		log.Printf("response write error: %v", err)
	}
}
