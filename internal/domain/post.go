// Package domain defines the core entities of the bookmark service.
package domain

import "time"

// Post represents a single bookmark.
// URL is unique across all posts; the service is single-user, so there
// is no owner dimension.
type Post struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	Unread      bool      `json:"unread"`
	Shared      bool      `json:"shared"`
	TagNames    []string  `json:"tag_names"`
	CreatedAt   time.Time `json:"date_added"`
	ModifiedAt  time.Time `json:"date_modified"`
}

// PostPatch carries a partial update of a post. Nil fields are left
// untouched; a non-nil TagNames replaces the full tag set.
type PostPatch struct {
	URL         *string
	Title       *string
	Description *string
	Notes       *string
	Unread      *bool
	Shared      *bool
	TagNames    []string

	// CreatedAt is honored only when the patch creates a new post
	// (the upsert path); an existing post's creation time is immutable.
	CreatedAt *time.Time
}

// Apply copies the patch's non-nil fields onto p.
func (patch *PostPatch) Apply(p *Post) {
	if patch.URL != nil {
		p.URL = *patch.URL
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.Unread != nil {
		p.Unread = *patch.Unread
	}
	if patch.Shared != nil {
		p.Shared = *patch.Shared
	}
	if patch.TagNames != nil {
		p.TagNames = patch.TagNames
	}
}

// UnreadFilter and SharedFilter are tri-state query dimensions.
type TriState int

// Tri-state filter values.
const (
	FilterAny TriState = iota
	FilterYes
	FilterNo
)

// PostQuery describes a filtered, paginated listing of posts.
// All dimensions are optional and AND-combined.
type PostQuery struct {
	// Search matches case-insensitive substrings of title, description
	// or notes (OR across the three fields).
	Search string
	// TagNames must all be present on a matching post (AND semantics).
	// Names are expected pre-normalized.
	TagNames []string
	Unread   TriState
	Shared   TriState
	Limit    int
	Offset   int
}
