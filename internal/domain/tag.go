package domain

import "time"

// Tag is a normalized label attachable to many posts.
// Name is the source of truth: lowercase, trimmed, unique. Tags persist
// as a vocabulary even when no post references them anymore.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
