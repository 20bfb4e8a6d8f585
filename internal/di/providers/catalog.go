package providers

import (
	"github.com/samber/do/v2"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/logger"
	"github.com/campushub/campus-server/internal/service"
)

// ProvideCatalogMetrics provides the catalog Prometheus metrics.
func ProvideCatalogMetrics(i do.Injector) (*catalog.Metrics, error) {
	return catalog.NewMetrics(), nil
}

// ProvideCatalogFetcher provides the catalog payload fetcher.
func ProvideCatalogFetcher(i do.Injector) (*catalog.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	metrics := do.MustInvoke[*catalog.Metrics](i)

	return catalog.NewFetcher(cfg.Catalog.FetchTimeout, metrics, log.Logger), nil
}

// ProvideCatalogService provides the library catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	fetcher := do.MustInvoke[*catalog.Fetcher](i)
	metrics := do.MustInvoke[*catalog.Metrics](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	svc, err := service.NewCatalogService(fetcher, cfg.Catalog.Sources, storeHandle.Store, sseHandle.Manager, metrics, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog service initialized",
		"areas", svc.Areas(),
		"watched_paths", len(svc.WatchPaths()),
	)

	return svc, nil
}
