package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hourlog/internal/adapters/liststore"
	"hourlog/internal/application/listutil"
	"hourlog/internal/domain/faults"
)

// envelope is the uniform JSON response shape. Success responses carry Data
// (and Count for lists, Page for paginated lists); failures carry Error (a
// stable machine-readable code) and Message (human-readable).
type envelope struct {
	Success bool               `json:"success"`
	Data    any                `json:"data,omitempty"`
	Count   *int               `json:"count,omitempty"`
	Page    *listutil.PageInfo `json:"page,omitempty"`
	Error   string             `json:"error,omitempty"`
	Message string             `json:"message,omitempty"`
}

// respondData writes a 200 success envelope around data.
func respondData(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondList writes a 200 success envelope with an explicit element count.
func respondList(w http.ResponseWriter, data any, count int) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// respondPage writes a 200 success envelope around one page of a list. Count
// carries the full matching total, not the page size.
func respondPage(w http.ResponseWriter, data any, info listutil.PageInfo) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data, Count: &info.Total, Page: &info})
}

// respondCreated writes a 201 success envelope around data.
func respondCreated(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// respondError classifies err and writes the matching failure envelope.
// Unclassified errors are logged and surface as a generic 500 so internal
// details never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal_error", "error", msg)
		msg = "internal server error"
	}
	writeEnvelope(w, status, envelope{Success: false, Error: code, Message: msg})
}

// respondInvalid writes a 400 failure envelope with the given message.
func respondInvalid(w http.ResponseWriter, msg string) {
	writeEnvelope(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid", Message: msg})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// classify maps an error to its HTTP status and stable error code. The fault
// taxonomy covers application errors; list-store sentinels cover raw
// storage errors that escaped classification.
func classify(err error) (int, string) {
	switch faults.KindOf(err) {
	case faults.KindInvalid:
		return http.StatusBadRequest, "invalid"
	case faults.KindNotFound:
		return http.StatusNotFound, "not_found"
	case faults.KindConflict:
		return http.StatusConflict, "conflict"
	case faults.KindUpstream:
		return http.StatusBadGateway, "upstream"
	}
	switch {
	case errors.Is(err, liststore.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, liststore.ErrUnauthorized), errors.Is(err, liststore.ErrForbidden):
		return http.StatusBadGateway, "upstream"
	}
	return http.StatusInternalServerError, "internal"
}
