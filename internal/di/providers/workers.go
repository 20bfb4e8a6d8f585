package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/logger"
	"github.com/campushub/campus-server/internal/service"
)

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
// The watcher is nil when no local catalog sources are configured.
type CatalogWatcherHandle struct {
	*catalog.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Close()
}

// ProvideCatalogWatcher provides the filesystem watcher that reloads
// file-backed catalog sources when they change.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	w, err := catalog.NewWatcher(catalogService.WatchPaths(), catalogService.Invalidate, log.Logger)
	if err != nil {
		return nil, err
	}
	if w == nil {
		log.Info("No local catalog sources to watch")
		return &CatalogWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)

	log.Info("Catalog file watcher started", "paths", len(catalogService.WatchPaths()))

	return &CatalogWatcherHandle{Watcher: w, cancel: cancel}, nil
}
