package utils

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email string  `validate:"required,email"`
	Name  string  `validate:"max=10"`
	Role  string  `validate:"role"`
	Coins float64 `validate:"gt0"`
	Code  string  `validate:"min=3"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sampleRequest
		wantErr string
	}{
		{
			name: "valid",
			in:   sampleRequest{Email: "a@b.com", Name: "Alice", Role: "worker", Coins: 5, Code: "abc"},
		},
		{
			name:    "missing required",
			in:      sampleRequest{Role: "worker", Coins: 5, Code: "abc"},
			wantErr: "required",
		},
		{
			name:    "bad email",
			in:      sampleRequest{Email: "not-an-email", Coins: 5, Code: "abc"},
			wantErr: "valid email",
		},
		{
			name:    "bad role",
			in:      sampleRequest{Email: "a@b.com", Role: "superuser", Coins: 5, Code: "abc"},
			wantErr: "one of",
		},
		{
			name:    "non-positive number",
			in:      sampleRequest{Email: "a@b.com", Coins: 0, Code: "abc"},
			wantErr: "positive",
		},
		{
			name:    "too long",
			in:      sampleRequest{Email: "a@b.com", Name: "0123456789x", Coins: 5, Code: "abc"},
			wantErr: "at most",
		},
		{
			name:    "too short",
			in:      sampleRequest{Email: "a@b.com", Coins: 5, Code: "ab"},
			wantErr: "at least",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateStructRejectsNonStruct(t *testing.T) {
	if err := ValidateStruct("not a struct"); err == nil {
		t.Fatal("expected error for non-struct input")
	}
}
