package store

import (
	"context"

	"github.com/linkhive/linkhive-server/internal/domain"
)

// Pagination bounds for post queries. linkding clients are known to ask
// for limit=100000 when paging is off, so the cap has to be generous.
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 100000
)

// Store is the persistence contract the services program against.
// The SQLite backend in store/sqlite is the only implementation.
type Store interface {
	// Posts. CreatePost rejects a duplicate URL with ErrAlreadyExists;
	// UpsertPostByURL merges into the existing post instead.
	CreatePost(ctx context.Context, p *domain.Post) error
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	GetPostByURL(ctx context.Context, url string) (*domain.Post, error)
	UpdatePost(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
	UpsertPostByURL(ctx context.Context, url string, patch domain.PostPatch) (*domain.Post, bool, error)
	QueryPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, int, error)

	// Tags.
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	Close() error
}
