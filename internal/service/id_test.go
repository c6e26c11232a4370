package service

import (
	"regexp"
	"testing"
)

var generatedID = regexp.MustCompile(`^[0-9a-f]{8}$`)

func strPtr(s string) *string { return &s }

func TestAllocateIDUsesNameVerbatim(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain", "note1"},
		{"surrounding spaces kept", "  note1 "},
		{"dots and dashes", "my-file.go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllocateID(strPtr(tt.in)); got != tt.in {
				t.Fatalf("AllocateID(%q) = %q", tt.in, got)
			}
		})
	}
}

func TestAllocateIDGeneratesWhenNameBlank(t *testing.T) {
	for _, in := range []*string{nil, strPtr(""), strPtr("   "), strPtr("\t\n")} {
		got := AllocateID(in)
		if len(got) != GeneratedIDLength || !generatedID.MatchString(got) {
			t.Fatalf("generated id %q is not 8 hex characters", got)
		}
	}
}

func TestAllocateIDDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := AllocateID(nil)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d allocations", id, i)
		}
		seen[id] = struct{}{}
	}
}
