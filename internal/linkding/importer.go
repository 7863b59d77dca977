package linkding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/normalize"
)

// PostUpserter is the slice of the store the importer needs.
type PostUpserter interface {
	UpsertPostByURL(ctx context.Context, url string, patch domain.PostPatch) (*domain.Post, bool, error)
}

// Importer ingests linkding JSON exports.
type Importer struct {
	store  PostUpserter
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(store PostUpserter, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: store, logger: logger}
}

// Import reads a JSON array of linkding records and upserts each one by
// URL, in input order. Records that fail to decode or lack a URL are
// skipped and counted; a bad record never aborts the run. When the
// input itself repeats a URL, the last record wins.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Summary, error) {
	// Decode to raw elements first so a malformed record is a per-record
	// failure, not a failed import.
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}

	summary := &Summary{Total: len(raw)}

	for idx, elem := range raw {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var rec Record
		if err := json.Unmarshal(elem, &rec); err != nil {
			i.logger.Warn("Skipping malformed import record", "index", idx, "error", err)
			summary.Skipped++
			continue
		}
		if rec.URL == "" {
			i.logger.Warn("Skipping import record without url", "index", idx)
			summary.Skipped++
			continue
		}

		if _, _, err := i.store.UpsertPostByURL(ctx, rec.URL, recordPatch(rec)); err != nil {
			i.logger.Warn("Skipping import record", "index", idx, "url", rec.URL, "error", err)
			summary.Skipped++
			continue
		}
		summary.Imported++
	}

	i.logger.Info("Import finished",
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"total", summary.Total,
	)
	return summary, nil
}

// recordPatch maps a record onto a post patch. Absent fields stay nil
// so re-imports only touch what the payload carries.
func recordPatch(rec Record) domain.PostPatch {
	patch := domain.PostPatch{
		Title:       rec.Title,
		Description: rec.Description,
		Notes:       rec.Notes,
		Unread:      rec.Unread,
		Shared:      rec.Shared,
	}
	if rec.TagNames != nil {
		patch.TagNames = normalize.Tags(rec.TagNames)
	}
	if t, err := time.Parse(time.RFC3339, rec.DateAdded); err == nil {
		patch.CreatedAt = &t
	}
	return patch
}
