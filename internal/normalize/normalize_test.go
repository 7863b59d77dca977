package normalize

import (
	"reflect"
	"testing"
)

func TestTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"golang", "golang"},
		{"GoLang", "golang"},
		{"  rust  ", "rust"},
		{"RUST", "rust"},
		// Internal whitespace is preserved.
		{"side project", "side project"},
		// Edge cases
		{"", ""},
		{"   ", ""},
		{"\t\n", ""},
		{"a\x00b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Tag(tt.input)
			if result != tt.expected {
				t.Errorf("Tag(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "case variants collapse to one",
			input:    []string{"Rust", "RUST", "rust "},
			expected: []string{"rust"},
		},
		{
			name:     "first occurrence order preserved",
			input:    []string{"zebra", "alpha", "Zebra"},
			expected: []string{"zebra", "alpha"},
		},
		{
			name:     "empties dropped",
			input:    []string{"", "  ", "go"},
			expected: []string{"go"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tags(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Tags(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTagsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"Rust", "GO ", "go", "  Web Dev  "},
		{"a", "A", "b"},
		nil,
	}

	for _, input := range inputs {
		once := Tags(input)
		twice := Tags(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Tags not idempotent: Tags(%v) = %v, Tags again = %v", input, once, twice)
		}
	}
}
