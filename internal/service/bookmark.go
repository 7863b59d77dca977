// Package service contains the application services between the HTTP
// surface and the store.
package service

import (
	"context"
	"log/slog"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/errors"
	"github.com/linkhive/linkhive-server/internal/normalize"
	"github.com/linkhive/linkhive-server/internal/store"
	"github.com/linkhive/linkhive-server/internal/validation"
)

// BookmarkService orchestrates bookmark operations: validation, tag
// normalization and error translation on top of the store.
type BookmarkService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookmarkService creates a bookmark service.
func NewBookmarkService(st store.Store, validator *validation.Validator, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateParams carries a client-facing bookmark creation.
type CreateParams struct {
	URL         string   `json:"url" validate:"required,max=2048"`
	Title       string   `json:"title" validate:"max=512"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
	Unread      bool     `json:"unread"`
	Shared      bool     `json:"shared"`
	TagNames    []string `json:"tag_names"`
}

// Create validates and stores a new bookmark.
// Returns a Conflict error if the URL is already bookmarked; creation
// never merges (imports go through the upsert path instead).
func (s *BookmarkService) Create(ctx context.Context, params CreateParams) (*domain.Post, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	p := &domain.Post{
		URL:         params.URL,
		Title:       params.Title,
		Description: params.Description,
		Notes:       params.Notes,
		Unread:      params.Unread,
		Shared:      params.Shared,
		TagNames:    normalize.Tags(params.TagNames),
	}

	if err := s.store.CreatePost(ctx, p); err != nil {
		if err == store.ErrAlreadyExists {
			return nil, errors.Conflict("bookmark with this URL already exists")
		}
		return nil, err
	}

	s.logger.Info("Bookmark created", "id", p.ID, "url", p.URL)
	return p, nil
}

// urlPatch is the validated shape of a URL change.
type urlPatch struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// Update applies a partial update. Tag names in the patch are
// normalized; a nil TagNames leaves associations alone.
func (s *BookmarkService) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	if patch.URL != nil {
		if err := s.validator.Validate(urlPatch{URL: *patch.URL}); err != nil {
			return nil, err
		}
	}
	if patch.TagNames != nil {
		patch.TagNames = normalize.Tags(patch.TagNames)
	}
	// Creation time is immutable through the client-facing API.
	patch.CreatedAt = nil

	p, err := s.store.UpdatePost(ctx, id, patch)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			return nil, errors.NotFound("bookmark not found")
		case store.ErrAlreadyExists:
			return nil, errors.Conflict("bookmark with this URL already exists")
		default:
			return nil, err
		}
	}

	s.logger.Info("Bookmark updated", "id", id)
	return p, nil
}

// Get returns a bookmark by id.
func (s *BookmarkService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFound("bookmark not found")
		}
		return nil, err
	}
	return p, nil
}

// CheckURL reports whether a URL is already bookmarked.
// Returns (nil, nil) when it is not; absence is an answer, not an error.
func (s *BookmarkService) CheckURL(ctx context.Context, url string) (*domain.Post, error) {
	p, err := s.store.GetPostByURL(ctx, url)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a bookmark. A repeated delete reports NotFound.
func (s *BookmarkService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		if err == store.ErrNotFound {
			return errors.NotFound("bookmark not found")
		}
		return err
	}
	s.logger.Info("Bookmark deleted", "id", id)
	return nil
}

// List runs a filtered, paginated query. Tag names in the filter are
// normalized first so case variants hit the same tags.
func (s *BookmarkService) List(ctx context.Context, q domain.PostQuery) ([]*domain.Post, int, error) {
	if q.TagNames != nil {
		q.TagNames = normalize.Tags(q.TagNames)
	}
	return s.store.QueryPosts(ctx, q)
}
