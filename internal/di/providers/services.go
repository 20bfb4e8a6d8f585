package providers

import (
	"github.com/samber/do/v2"

	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/logger"
	"github.com/campushub/campus-server/internal/service"
)

// ProvideAuthService provides the login and account service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	return service.NewAuthService(storeHandle.Store, tokens, cfg, log.Logger), nil
}

// ProvideReservationService provides the item reservation service.
func ProvideReservationService(i do.Injector) (*service.ReservationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	return service.NewReservationService(
		storeHandle.Store,
		catalogService,
		sseHandle.Manager,
		cfg.Portal.HoldDuration,
		cfg.Portal.MaxActiveReservations,
		log.Logger,
	), nil
}

// ProvideBookingService provides the room booking service.
func ProvideBookingService(i do.Injector) (*service.BookingService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	return service.NewBookingService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideNoticeService provides the notice board service.
func ProvideNoticeService(i do.Injector) (*service.NoticeService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewNoticeService(storeHandle.Store, indexHandle.SearchIndex, sseHandle.Manager, log.Logger), nil
}

// ProvideMessageService provides the direct message service.
func ProvideMessageService(i do.Injector) (*service.MessageService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	return service.NewMessageService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideCommunityService provides the communities, clubs and competitions service.
func ProvideCommunityService(i do.Injector) (*service.CommunityService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewCommunityService(storeHandle.Store, indexHandle.SearchIndex, sseHandle.Manager, log.Logger), nil
}

// ProvideProjectService provides the project showcase service.
func ProvideProjectService(i do.Injector) (*service.ProjectService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewProjectService(storeHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}
