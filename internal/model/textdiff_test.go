package model

import "testing"

func TestTextDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		inserted string
		removed  string
	}{
		{"append", "Hello", "Hello World", " World", ""},
		{"truncate", "Hello World", "Hello", "", " World"},
		{"replace", "Yes", "No", "No", "Yes"},
		{"unchanged", "Hello", "Hello", "", ""},
		{"from empty", "", "abc", "abc", ""},
		{"to empty", "abc", "", "", "abc"},
		{"interior edit", "Count: 3 items", "Count: 14 items", "14", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, rem := TextDiff(tt.old, tt.new)
			if ins != tt.inserted || rem != tt.removed {
				t.Fatalf("TextDiff(%q, %q) = (%q, %q), want (%q, %q)",
					tt.old, tt.new, ins, rem, tt.inserted, tt.removed)
			}
		})
	}
}
