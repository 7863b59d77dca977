package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/linkhive/linkhive-server/internal/api"
	"github.com/linkhive/linkhive-server/internal/config"
	"github.com/linkhive/linkhive-server/internal/logger"
	"github.com/linkhive/linkhive-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server, already listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	bookmarkService := do.MustInvoke[*service.BookmarkService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	transferService := do.MustInvoke[*service.TransferService](i)

	handler := api.NewServer(bookmarkService, tagService, transferService,
		cfg.Auth.Token, cfg.Server.CORSOrigins, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
