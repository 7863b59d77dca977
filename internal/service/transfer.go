package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/linkding"
	"github.com/linkhive/linkhive-server/internal/netscape"
	"github.com/linkhive/linkhive-server/internal/store"
)

// TransferService moves bookmark collections in and out of the store:
// linkding JSON in both directions, Netscape HTML out.
type TransferService struct {
	store    store.Store
	importer *linkding.Importer
	logger   *slog.Logger
}

// NewTransferService creates a transfer service.
func NewTransferService(st store.Store, logger *slog.Logger) *TransferService {
	return &TransferService{
		store:    st,
		importer: linkding.NewImporter(st, logger),
		logger:   logger,
	}
}

// ImportJSON reads a linkding JSON export and upserts every record.
// Malformed records are skipped and counted, never fatal.
func (s *TransferService) ImportJSON(ctx context.Context, r io.Reader) (*linkding.Summary, error) {
	return s.importer.Import(ctx, r)
}

// exportPageSize bounds the per-query page while collecting an export.
// Variable so tests can exercise the paging.
var exportPageSize = 1000

// allPosts collects the whole collection in the canonical order, newest
// first, paging until the store is exhausted. Exports must never
// truncate, however large the collection.
func (s *TransferService) allPosts(ctx context.Context) ([]*domain.Post, error) {
	var all []*domain.Post
	for offset := 0; ; offset += exportPageSize {
		page, _, err := s.store.QueryPosts(ctx, domain.PostQuery{
			Limit:  exportPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}

// ExportJSON writes the full collection as linkding JSON.
func (s *TransferService) ExportJSON(ctx context.Context, w io.Writer) error {
	posts, err := s.allPosts(ctx)
	if err != nil {
		return err
	}
	if err := linkding.Export(w, posts); err != nil {
		return err
	}
	s.logger.Info("Exported bookmarks", "format", "json", "count", len(posts))
	return nil
}

// ExportHTML writes the full collection as a Netscape bookmark file.
// The format is lossy: notes and modification times are not carried.
func (s *TransferService) ExportHTML(ctx context.Context, w io.Writer) error {
	posts, err := s.allPosts(ctx)
	if err != nil {
		return err
	}
	if err := netscape.Write(w, posts); err != nil {
		return err
	}
	s.logger.Info("Exported bookmarks", "format", "html", "count", len(posts))
	return nil
}
