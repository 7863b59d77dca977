package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/store"
)

// postColumns is the ordered list of columns selected in post queries.
// Must match the scan order in scanPost.
const postColumns = `id, url, title, description, notes, unread, shared, created_at, modified_at`

// scanPost scans a sql.Row (or sql.Rows via its Scan method) into a domain.Post.
// TagNames is left nil; the caller loads associations separately.
func scanPost(scanner interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var p domain.Post

	var (
		createdAt  string
		modifiedAt string
	)

	err := scanner.Scan(
		&p.ID,
		&p.URL,
		&p.Title,
		&p.Description,
		&p.Notes,
		&p.Unread,
		&p.Shared,
		&createdAt,
		&modifiedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.ModifiedAt, err = parseTime(modifiedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreatePost inserts a new post together with its tag associations in a
// single transaction. Missing tags are created on the fly. The post's
// ID and timestamps are filled in on success.
// Returns store.ErrAlreadyExists if the URL is already bookmarked;
// creation never merges into an existing post.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.ModifiedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO posts (url, title, description, notes, unread, shared, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.URL,
		p.Title,
		p.Description,
		p.Notes,
		p.Unread,
		p.Shared,
		formatTime(p.CreatedAt),
		formatTime(p.ModifiedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert post: %w", err)
	}

	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	if err := setPostTagsTx(ctx, tx, p.ID, p.TagNames); err != nil {
		return err
	}
	if p.TagNames == nil {
		p.TagNames = []string{}
	}

	return tx.Commit()
}

// GetPost retrieves a post by id, including its tag names.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.TagNames, err = s.postTagNames(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPostByURL retrieves a post by its URL.
// Returns store.ErrNotFound if no post has this URL.
func (s *Store) GetPostByURL(ctx context.Context, url string) (*domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE url = ?`, url)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.TagNames, err = s.postTagNames(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePost applies a partial update to an existing post. Only the
// patch's non-nil fields change; a non-nil TagNames replaces the whole
// association set. Runs in a single transaction.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) UpdatePost(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(p)
	p.ModifiedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		UPDATE posts
		SET url = ?, title = ?, description = ?, notes = ?, unread = ?, shared = ?, modified_at = ?
		WHERE id = ?`,
		p.URL,
		p.Title,
		p.Description,
		p.Notes,
		p.Unread,
		p.Shared,
		formatTime(p.ModifiedAt),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if patch.TagNames != nil {
		if err := replacePostTagsTx(ctx, tx, p.ID, patch.TagNames); err != nil {
			return nil, err
		}
		p.TagNames = patch.TagNames
	} else {
		p.TagNames, err = postTagNamesTx(ctx, tx, p.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost removes a post and, via foreign keys, its associations.
// Tags themselves are never deleted here; the vocabulary persists.
// Returns store.ErrNotFound if the post does not exist, including on a
// repeated delete.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpsertPostByURL creates a post for url if none exists, otherwise
// merges the patch into the existing post. This is the import path's
// merge semantics; client-facing creation goes through CreatePost,
// which rejects duplicates instead.
// Returns the resulting post and whether it was newly created.
func (s *Store) UpsertPostByURL(ctx context.Context, url string, patch domain.PostPatch) (*domain.Post, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE url = ?`, url)
	p, err := scanPost(row)

	switch {
	case err == sql.ErrNoRows:
		// Create. The patch's CreatedAt is honored here and only here.
		now := time.Now().UTC()
		p = &domain.Post{URL: url, CreatedAt: now}
		if patch.CreatedAt != nil && !patch.CreatedAt.IsZero() {
			p.CreatedAt = patch.CreatedAt.UTC()
		}
		patch.Apply(p)
		p.URL = url
		p.ModifiedAt = now

		res, err := tx.ExecContext(ctx, `
			INSERT INTO posts (url, title, description, notes, unread, shared, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.URL,
			p.Title,
			p.Description,
			p.Notes,
			p.Unread,
			p.Shared,
			formatTime(p.CreatedAt),
			formatTime(p.ModifiedAt),
		)
		if err != nil {
			return nil, false, fmt.Errorf("insert post: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("last insert id: %w", err)
		}

		if err := setPostTagsTx(ctx, tx, p.ID, p.TagNames); err != nil {
			return nil, false, err
		}
		if p.TagNames == nil {
			p.TagNames = []string{}
		}

		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return p, true, nil

	case err != nil:
		return nil, false, err

	default:
		// Merge. Creation time stays untouched.
		patch.Apply(p)
		p.URL = url
		p.ModifiedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx, `
			UPDATE posts
			SET title = ?, description = ?, notes = ?, unread = ?, shared = ?, modified_at = ?
			WHERE id = ?`,
			p.Title,
			p.Description,
			p.Notes,
			p.Unread,
			p.Shared,
			formatTime(p.ModifiedAt),
			p.ID,
		)
		if err != nil {
			return nil, false, fmt.Errorf("update post: %w", err)
		}

		if patch.TagNames != nil {
			if err := replacePostTagsTx(ctx, tx, p.ID, patch.TagNames); err != nil {
				return nil, false, err
			}
			p.TagNames = patch.TagNames
		} else {
			p.TagNames, err = postTagNamesTx(ctx, tx, p.ID)
			if err != nil {
				return nil, false, err
			}
		}

		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return p, false, nil
	}
}

// postTagNames returns the tag names attached to a post, sorted.
func (s *Store) postTagNames(ctx context.Context, postID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ?
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, fmt.Errorf("query post tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// postTagNamesTx is postTagNames inside an open transaction.
func postTagNamesTx(ctx context.Context, tx *sql.Tx, postID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ?
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, fmt.Errorf("query post tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// setPostTagsTx inserts associations for a freshly created post,
// creating missing tags along the way.
func setPostTagsTx(ctx context.Context, tx *sql.Tx, postID int64, names []string) error {
	for _, name := range names {
		tagID, err := findOrCreateTagTx(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)
			ON CONFLICT DO NOTHING`,
			postID, tagID)
		if err != nil {
			return fmt.Errorf("insert post_tag: %w", err)
		}
	}
	return nil
}

// replacePostTagsTx replaces the full association set for a post.
func replacePostTagsTx(ctx context.Context, tx *sql.Tx, postID int64, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("delete post_tags: %w", err)
	}
	return setPostTagsTx(ctx, tx, postID, names)
}
