// Package di provides dependency injection configuration for the campus portal server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/di/providers"
	"github.com/campushub/campus-server/internal/logger"
	"github.com/campushub/campus-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogMetrics)
	do.Provide(injector, providers.ProvideCatalogFetcher)
	do.Provide(injector, providers.ProvideCatalogService)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideReservationService)
	do.Provide(injector, providers.ProvideBookingService)
	do.Provide(injector, providers.ProvideNoticeService)
	do.Provide(injector, providers.ProvideMessageService)
	do.Provide(injector, providers.ProvideCommunityService)
	do.Provide(injector, providers.ProvideProjectService)

	// Workers
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Metrics](injector)
	_ = do.MustInvoke[*catalog.Fetcher](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ReservationService](injector)
	_ = do.MustInvoke[*service.BookingService](injector)
	_ = do.MustInvoke[*service.NoticeService](injector)
	_ = do.MustInvoke[*service.MessageService](injector)
	_ = do.MustInvoke[*service.CommunityService](injector)
	_ = do.MustInvoke[*service.ProjectService](injector)

	// Workers
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
