package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/workplan/internal/application/components/logging"
	"github.com/grand-thief-cash/workplan/internal/service"
	"github.com/grand-thief-cash/workplan/internal/timerange"
)

// actorHeader carries the authenticated user id. Authentication itself is
// handled upstream; this service trusts the header.
const actorHeader = "X-User-ID"

type errorBody struct {
	Code             string  `json:"code"`
	Message          string  `json:"message"`
	ConflictingSlots []int64 `json:"conflicting_slot_ids,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without leaking detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorBody
	var status int

	var oc *service.OverlapConflictError
	switch {
	case errors.As(err, &oc):
		status = http.StatusConflict
		body = errorBody{Code: "OVERLAP_CONFLICT", Message: oc.Error(), ConflictingSlots: oc.SlotIDs}
	case errors.Is(err, service.ErrEditWindowClosed):
		status = http.StatusConflict
		body = errorBody{Code: "EDIT_WINDOW_CLOSED", Message: err.Error()}
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		body = errorBody{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrTimeLogNotFound):
		status = http.StatusNotFound
		body = errorBody{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, timerange.ErrMalformed),
		errors.Is(err, timerange.ErrBadTimestamp),
		errors.Is(err, timerange.ErrInverted),
		errors.Is(err, service.ErrNonPositiveDuration),
		errors.Is(err, service.ErrDurationTooShort),
		errors.Is(err, service.ErrNotAligned):
		status = http.StatusBadRequest
		body = errorBody{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		logging.Errorf(r.Context(), "unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		status = http.StatusInternalServerError
		body = errorBody{Code: "INTERNAL", Message: "internal error"}
	}
	writeJSON(w, status, body)
}

// actorID extracts the calling user from the request header.
func actorID(r *http.Request) (int64, bool) {
	raw := r.Header.Get(actorHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_INPUT", Message: msg})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "missing or invalid " + actorHeader + " header"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "malformed request body")
		return false
	}
	return true
}
