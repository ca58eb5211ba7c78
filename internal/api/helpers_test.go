package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grand-thief-cash/workplan/internal/service"
	"github.com/grand-thief-cash/workplan/internal/timerange"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed range", timerange.ErrMalformed, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad timestamp", timerange.ErrBadTimestamp, http.StatusBadRequest, "INVALID_INPUT"},
		{"not aligned", service.ErrNotAligned, http.StatusBadRequest, "INVALID_INPUT"},
		{"too short", service.ErrDurationTooShort, http.StatusBadRequest, "INVALID_INPUT"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"task missing", service.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"slot missing", service.ErrSlotNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"edit window", service.ErrEditWindowClosed, http.StatusConflict, "EDIT_WINDOW_CLOSED"},
		{"unknown", fmt.Errorf("db exploded"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
			writeError(rec, req, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", body.Code, tc.wantCode)
			}
		})
	}
}

func TestWriteErrorOverlapCarriesSlotIDs(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots", nil)
	writeError(rec, req, &service.OverlapConflictError{SlotIDs: []int64{4, 9}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "OVERLAP_CONFLICT" {
		t.Fatalf("code = %q, want OVERLAP_CONFLICT", body.Code)
	}
	if len(body.ConflictingSlots) != 2 || body.ConflictingSlots[0] != 4 || body.ConflictingSlots[1] != 9 {
		t.Fatalf("conflicting slots = %v, want [4 9]", body.ConflictingSlots)
	}
}

func TestActorID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := actorID(req); ok {
		t.Fatal("missing header must not authenticate")
	}
	req.Header.Set(actorHeader, "abc")
	if _, ok := actorID(req); ok {
		t.Fatal("non-numeric header must not authenticate")
	}
	req.Header.Set(actorHeader, "-3")
	if _, ok := actorID(req); ok {
		t.Fatal("non-positive id must not authenticate")
	}
	req.Header.Set(actorHeader, "42")
	id, ok := actorID(req)
	if !ok || id != 42 {
		t.Fatalf("actor = %d/%v, want 42/true", id, ok)
	}
}
