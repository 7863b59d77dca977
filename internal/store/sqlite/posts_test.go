package sqlite

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/store"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreatePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &domain.Post{
		URL:      "https://example.com",
		Title:    "Example",
		Notes:    "some notes",
		Unread:   true,
		TagNames: []string{"go", "testing"},
	}
	if err := s.CreatePost(ctx, p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected non-zero id")
	}
	if p.CreatedAt.IsZero() || p.ModifiedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := s.GetPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.URL != "https://example.com" || got.Title != "Example" || !got.Unread {
		t.Errorf("unexpected post: %+v", got)
	}
	if !reflect.DeepEqual(got.TagNames, []string{"go", "testing"}) {
		t.Errorf("expected tags [go testing], got %v", got.TagNames)
	}
}

func TestCreatePostDuplicateURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreatePost(ctx, &domain.Post{URL: "https://example.com"}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	err := s.CreatePost(ctx, &domain.Post{URL: "https://example.com", Title: "again"})
	if err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// The original post is untouched; the store never silently merges.
	got, err := s.GetPostByURL(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("get by url: %v", err)
	}
	if got.Title != "" {
		t.Errorf("original post was modified: %+v", got)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPost(context.Background(), 12345)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPostByURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &domain.Post{URL: "https://example.com", TagNames: []string{"a"}}
	if err := s.CreatePost(ctx, p); err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := s.GetPostByURL(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("get by url: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected id %d, got %d", p.ID, got.ID)
	}

	if _, err := s.GetPostByURL(ctx, "https://other.com"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePostPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &domain.Post{
		URL:         "https://example.com",
		Title:       "Original",
		Description: "desc",
		TagNames:    []string{"keep"},
	}
	if err := s.CreatePost(ctx, p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	created := p.CreatedAt

	got, err := s.UpdatePost(ctx, p.ID, domain.PostPatch{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("expected Renamed, got %s", got.Title)
	}
	// Omitted fields keep their values.
	if got.Description != "desc" {
		t.Errorf("description changed: %s", got.Description)
	}
	if !reflect.DeepEqual(got.TagNames, []string{"keep"}) {
		t.Errorf("tags changed without TagNames patch: %v", got.TagNames)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("created_at must be immutable")
	}
	if !got.ModifiedAt.After(created) && !got.ModifiedAt.Equal(created) {
		t.Error("modified_at should advance")
	}
}

func TestUpdatePostReplacesTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &domain.Post{URL: "https://example.com", TagNames: []string{"a", "b"}}
	if err := s.CreatePost(ctx, p); err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := s.UpdatePost(ctx, p.ID, domain.PostPatch{TagNames: []string{"c"}})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if !reflect.DeepEqual(got.TagNames, []string{"c"}) {
		t.Errorf("expected [c], got %v", got.TagNames)
	}

	// Old tags survive as vocabulary.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("expected 3 tags in vocabulary, got %d", len(tags))
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdatePost(context.Background(), 999, domain.PostPatch{Title: strPtr("x")})
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shared := &domain.Post{URL: "https://a.com", TagNames: []string{"shared", "solo"}}
	if err := s.CreatePost(ctx, shared); err != nil {
		t.Fatalf("create post: %v", err)
	}
	other := &domain.Post{URL: "https://b.com", TagNames: []string{"shared"}}
	if err := s.CreatePost(ctx, other); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := s.DeletePost(ctx, shared.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	// Associations for the deleted post are gone.
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM post_tags WHERE post_id = ?", shared.ID).Scan(&n); err != nil {
		t.Fatalf("count post_tags: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 associations, got %d", n)
	}

	// The other post keeps its tags; the shared tag is not deleted.
	got, err := s.GetPost(ctx, other.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if !reflect.DeepEqual(got.TagNames, []string{"shared"}) {
		t.Errorf("other post lost tags: %v", got.TagNames)
	}
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tags should persist as vocabulary, got %d", len(tags))
	}

	// Deleting again reports NotFound, not silent success.
	if err := s.DeletePost(ctx, shared.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestUpsertPostByURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	imported := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	p, created, err := s.UpsertPostByURL(ctx, "https://example.com", domain.PostPatch{
		Title:     strPtr("First"),
		Unread:    boolPtr(true),
		TagNames:  []string{"a"},
		CreatedAt: &imported,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("expected created=true on first upsert")
	}
	if !p.CreatedAt.Equal(imported) {
		t.Errorf("expected imported created_at, got %v", p.CreatedAt)
	}

	// Second upsert merges; created_at stays.
	later := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p2, created, err := s.UpsertPostByURL(ctx, "https://example.com", domain.PostPatch{
		Title:     strPtr("Second"),
		TagNames:  []string{"b"},
		CreatedAt: &later,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Error("expected created=false on merge")
	}
	if p2.ID != p.ID {
		t.Errorf("upsert must reuse the post, got ids %d and %d", p.ID, p2.ID)
	}
	if p2.Title != "Second" {
		t.Errorf("second import's values win, got %s", p2.Title)
	}
	if !p2.CreatedAt.Equal(imported) {
		t.Errorf("created_at must not change on merge, got %v", p2.CreatedAt)
	}
	if !reflect.DeepEqual(p2.TagNames, []string{"b"}) {
		t.Errorf("expected [b], got %v", p2.TagNames)
	}

	// Unread not supplied on merge: prior value kept.
	if !p2.Unread {
		t.Error("unread should keep prior value when omitted")
	}

	// Still exactly one post.
	_, total, err := s.QueryPosts(ctx, domain.PostQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 post, got %d", total)
	}
}
