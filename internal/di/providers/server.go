package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/campushub/campus-server/internal/api"
	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/logger"
	"github.com/campushub/campus-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	metrics := do.MustInvoke[*catalog.Metrics](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	services := api.Services{
		Auth:         do.MustInvoke[*service.AuthService](i),
		Catalog:      do.MustInvoke[*service.CatalogService](i),
		Reservations: do.MustInvoke[*service.ReservationService](i),
		Bookings:     do.MustInvoke[*service.BookingService](i),
		Notices:      do.MustInvoke[*service.NoticeService](i),
		Messages:     do.MustInvoke[*service.MessageService](i),
		Communities:  do.MustInvoke[*service.CommunityService](i),
		Projects:     do.MustInvoke[*service.ProjectService](i),
		Search:       do.MustInvoke[*service.SearchService](i),
	}

	handler := api.NewServer(services, tokens, metrics, sseHandle.Manager, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
