package service

import (
	"context"
	"log/slog"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/errors"
	"github.com/linkhive/linkhive-server/internal/store"
)

// TagService exposes the tag vocabulary.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  st,
		logger: logger,
	}
}

// List returns every known tag in name order, including tags no
// bookmark currently references.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// Get returns a tag by id.
func (s *TagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFound("tag not found")
		}
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag from the vocabulary along with its bookmark
// associations. The bookmarks themselves are untouched.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		if err == store.ErrNotFound {
			return errors.NotFound("tag not found")
		}
		return err
	}
	s.logger.Info("Tag deleted", "id", id)
	return nil
}
