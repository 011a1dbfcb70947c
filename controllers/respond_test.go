package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"microjob/store"
	"microjob/utils"
)

func TestWriteStoreErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{store.ErrNotFound, http.StatusNotFound},
		{store.ErrForbidden, http.StatusForbidden},
		{store.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: minimum withdrawal is 200 coins", store.ErrInvalidInput), http.StatusBadRequest},
		{store.ErrInsufficientBalance, http.StatusBadRequest},
		{store.ErrNoSlotsAvailable, http.StatusConflict},
		{store.ErrAlreadyProcessed, http.StatusConflict},
		{fmt.Errorf("driver gone away"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteStoreError(rec, tt.err, "fallback message")
		if rec.Code != tt.code {
			t.Errorf("WriteStoreError(%v): got status %d, want %d", tt.err, rec.Code, tt.code)
		}
		var body utils.APIResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body.Success {
			t.Errorf("WriteStoreError(%v): success must be false", tt.err)
		}
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/?page=3&limit=40", nil)
	page, limit := ParsePagination(r, 10)
	if page != 3 || limit != 40 {
		t.Fatalf("got page=%d limit=%d", page, limit)
	}

	r = httptest.NewRequest("GET", "http://example.local/", nil)
	page, limit = ParsePagination(r, 10)
	if page != 1 || limit != 10 {
		t.Fatalf("defaults: got page=%d limit=%d", page, limit)
	}

	r = httptest.NewRequest("GET", "http://example.local/?page=-2&limit=9999", nil)
	page, limit = ParsePagination(r, 10)
	if page != 1 || limit != 100 {
		t.Fatalf("clamping: got page=%d limit=%d", page, limit)
	}
}

func TestPaginatedEnvelope(t *testing.T) {
	env := Paginated([]int{1, 2, 3}, 2, 10, 23)
	p, ok := env["pagination"].(map[string]interface{})
	if !ok {
		t.Fatal("missing pagination block")
	}
	if p["total_pages"].(int) != 3 {
		t.Fatalf("expected 3 total pages, got %v", p["total_pages"])
	}
}
