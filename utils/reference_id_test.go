package utils

import (
	"strings"
	"testing"
)

func TestGenerateReferenceIDFormat(t *testing.T) {
	id := GenerateReferenceID(42)
	if !strings.HasPrefix(id, "MJB-") {
		t.Fatalf("unexpected prefix: %s", id)
	}
	if len(id) < len("MJB-")+10 {
		t.Fatalf("reference id too short: %s", id)
	}
}

func TestGenerateReferenceIDMostlyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateReferenceID(uint(i))
		if seen[id] {
			t.Fatalf("duplicate reference id: %s", id)
		}
		seen[id] = true
	}
}
