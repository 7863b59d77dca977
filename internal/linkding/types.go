// Package linkding converts between the store and the linkding JSON
// export format, the bulk interchange shape used by the source
// ecosystem's clients.
package linkding

import (
	"encoding/json"
	"strings"
	"unicode"
)

// TagList decodes a linkding tag field. Exports carry an array of
// strings, but some tools emit a single comma- or whitespace-delimited
// string instead; both are accepted. Anything else decodes as empty.
type TagList []string

// UnmarshalJSON implements tolerant decoding for TagList.
func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TagList(strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}))
		return nil
	}

	// Malformed tag field: discard rather than fail the record.
	*t = nil
	return nil
}

// Record is one bookmark in the linkding export shape. Pointer fields
// distinguish "absent" from "zero" so an import only overwrites what
// the payload actually carries. Unknown fields (archival flags and the
// like) are ignored by the decoder.
type Record struct {
	URL          string  `json:"url"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Notes        *string `json:"notes"`
	Unread       *bool   `json:"unread"`
	Shared       *bool   `json:"shared"`
	TagNames     TagList `json:"tag_names"`
	DateAdded    string  `json:"date_added"`
	DateModified string  `json:"date_modified"`
}

// Summary reports the outcome of a bulk import. A non-zero Skipped
// count is not an error; import always runs to completion.
type Summary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
