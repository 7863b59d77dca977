package linkding

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/linkhive/linkhive-server/internal/domain"
)

// Export writes posts as a linkding JSON export, the same shape Import
// reads, so a store can be round-tripped through this format.
func Export(w io.Writer, posts []*domain.Post) error {
	records := make([]Record, 0, len(posts))
	for _, p := range posts {
		records = append(records, Record{
			URL:          p.URL,
			Title:        &p.Title,
			Description:  &p.Description,
			Notes:        &p.Notes,
			Unread:       &p.Unread,
			Shared:       &p.Shared,
			TagNames:     TagList(p.TagNames),
			DateAdded:    p.CreatedAt.UTC().Format(time.RFC3339),
			DateModified: p.ModifiedAt.UTC().Format(time.RFC3339),
		})
	}

	buf, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
