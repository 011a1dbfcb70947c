package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=5"`
}

func postJSON(body string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest("POST", "http://example.local/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), r
}

func TestValidateJSONAccepts(t *testing.T) {
	rec, r := postJSON(`{"email":"a@b.com","name":"Al"}`)
	var dst echoPayload
	if err := ValidateJSON(rec, r, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Email != "a@b.com" {
		t.Fatalf("decoded wrong value: %+v", dst)
	}
}

func TestValidateJSONRejectsWrongContentType(t *testing.T) {
	r := httptest.NewRequest("POST", "http://example.local/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	var dst echoPayload
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected error for wrong content type")
	}
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestValidateJSONRejectsUnknownField(t *testing.T) {
	rec, r := postJSON(`{"email":"a@b.com","bogus":true}`)
	var dst echoPayload
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestValidateJSONRejectsInvalidPayload(t *testing.T) {
	rec, r := postJSON(`{"email":"not-an-email"}`)
	var dst echoPayload
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected validation error")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
