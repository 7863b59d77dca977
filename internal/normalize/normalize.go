// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import "strings"

// Tags canonicalizes a list of raw tag strings.
// Each entry is sanitized, trimmed and lowercased; empty results are
// dropped. Duplicates collapse to the first occurrence, so output order
// is the insertion order of first appearance.
//
// The operation is idempotent: feeding the output back in returns the
// same list.
func Tags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		name := Tag(r)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

// Tag canonicalizes a single tag name: sanitize, trim, lowercase.
// Returns "" for tags that normalize to nothing.
// Lowercasing uses Unicode simple case mapping; internal whitespace is
// kept as-is since tags arrive pre-split.
func Tag(raw string) string {
	return strings.ToLower(strings.TrimSpace(sanitizeString(raw)))
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing. Exported bookmark files from
// other tools occasionally contain them.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
