package linkding

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkhive/linkhive-server/internal/domain"
)

func TestExportRoundTrip(t *testing.T) {
	posts := []*domain.Post{
		{
			ID:         2,
			URL:        "https://b.com",
			Title:      "B",
			Notes:      "note",
			Unread:     true,
			TagNames:   []string{"go", "web"},
			CreatedAt:  time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			ModifiedAt: time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         1,
			URL:        "https://a.com",
			Title:      "A",
			Shared:     true,
			TagNames:   []string{},
			CreatedAt:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			ModifiedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, posts))

	// Importing our own export reproduces the posts by URL.
	store := newFakeStore()
	imp := NewImporter(store, testLogger())
	summary, err := imp.Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)

	b := store.posts["https://b.com"]
	require.NotNil(t, b)
	assert.Equal(t, "B", b.Title)
	assert.Equal(t, "note", b.Notes)
	assert.True(t, b.Unread)
	assert.Equal(t, []string{"go", "web"}, b.TagNames)
	assert.Equal(t, posts[0].CreatedAt, b.CreatedAt.UTC())

	a := store.posts["https://a.com"]
	require.NotNil(t, a)
	assert.True(t, a.Shared)
	assert.Equal(t, []string{}, a.TagNames)
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}
