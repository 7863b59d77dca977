package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/store"
)

// QueryPosts returns the posts matching q plus the total match count
// before pagination. Filters are AND-combined; results are ordered by
// creation time descending, ties broken by id descending.
// Out-of-range limit and offset values are clamped, never rejected.
// Count and page run in one transaction so a concurrent writer cannot
// make total_count disagree with the returned rows.
func (s *Store) QueryPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, int, error) {
	var (
		where []string
		args  []any
	)

	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		where = append(where,
			`(lower(title) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\' OR lower(notes) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	// One EXISTS per required tag gives AND semantics across tags.
	for _, name := range q.TagNames {
		where = append(where, `EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = posts.id AND t.name = ?)`)
		args = append(args, name)
	}

	if q.Unread != domain.FilterAny {
		where = append(where, `unread = ?`)
		args = append(args, q.Unread == domain.FilterYes)
	}
	if q.Shared != domain.FilterAny {
		where = append(where, `shared = ?`)
		args = append(args, q.Shared == domain.FilterYes)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Total before pagination so clients can page.
	var total int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts`+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	if limit > store.MaxQueryLimit {
		limit = store.MaxQueryLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	queryArgs := append(args, limit, offset)
	rows, err := tx.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts`+whereClause+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := attachTagNamesTx(ctx, tx, posts); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// attachTagNamesTx loads tag names for a page of posts in one query,
// inside the open read transaction.
func attachTagNamesTx(ctx context.Context, tx *sql.Tx, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Post, len(posts))
	placeholders := make([]string, 0, len(posts))
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		p.TagNames = []string{}
		byID[p.ID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT pt.post_id, t.name FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY t.name`, args...)
	if err != nil {
		return fmt.Errorf("query page tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID int64
			name   string
		)
		if err := rows.Scan(&postID, &name); err != nil {
			return fmt.Errorf("scan page tag: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.TagNames = append(p.TagNames, name)
		}
	}
	return rows.Err()
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
