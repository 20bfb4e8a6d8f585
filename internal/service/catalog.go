// Package service provides the business logic layer for the campus portal.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// maxCachedAreas bounds the per-area payload cache. Catalogs are configured
// statically, so this mostly guards against a misconfigured source list.
const maxCachedAreas = 32

// CatalogService loads catalog sources, caches parsed payloads per area, and
// answers filtered queries with reservation status overlaid.
type CatalogService struct {
	fetcher *catalog.Fetcher
	sources []config.CatalogSource
	cache   *lru.Cache[string, []domain.CatalogItem]
	store   *store.Store
	events  *sse.Manager
	metrics *catalog.Metrics
	logger  *slog.Logger
}

// NewCatalogService creates a catalog service. events may be nil in tests.
func NewCatalogService(
	fetcher *catalog.Fetcher,
	sources []config.CatalogSource,
	st *store.Store,
	events *sse.Manager,
	metrics *catalog.Metrics,
	logger *slog.Logger,
) (*CatalogService, error) {
	cache, err := lru.New[string, []domain.CatalogItem](maxCachedAreas)
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}

	return &CatalogService{
		fetcher: fetcher,
		sources: sources,
		cache:   cache,
		store:   st,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Areas returns the configured area labels in source order.
func (s *CatalogService) Areas() []string {
	areas := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		areas = append(areas, src.Area)
	}
	return areas
}

// WatchPaths maps local source file paths to their areas, for the fsnotify
// watcher. Remote sources have no path and are not watched.
func (s *CatalogService) WatchPaths() map[string]string {
	paths := make(map[string]string)
	for _, src := range s.sources {
		if src.URL == "" && src.Path != "" {
			paths[src.Path] = src.Area
		}
	}
	return paths
}

// Invalidate drops the cached payload for an area so the next query reloads
// it. Called by the file watcher when a local source changes.
func (s *CatalogService) Invalidate(area string) {
	s.cache.Remove(area)
	s.logger.Info("catalog cache invalidated", "area", area)
}

// areaItems returns one area's parsed items, loading and caching on miss.
func (s *CatalogService) areaItems(ctx context.Context, src config.CatalogSource) []domain.CatalogItem {
	if items, ok := s.cache.Get(src.Area); ok {
		s.metrics.ObserveCacheHit()
		return items
	}

	payload := s.fetcher.Load(ctx, src)
	s.cache.Add(payload.Area, payload.Items)

	if s.events != nil {
		s.events.Emit(sse.NewCatalogReloadedEvent(payload.Area, len(payload.Items)))
	}

	return payload.Items
}

// Items returns every catalog item across all configured sources, in source
// order then row order.
func (s *CatalogService) Items(ctx context.Context) []domain.CatalogItem {
	var all []domain.CatalogItem
	for _, src := range s.sources {
		all = append(all, s.areaItems(ctx, src)...)
	}
	return all
}

// Item finds a catalog item by its per-load-cycle ID.
func (s *CatalogService) Item(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	for _, item := range s.Items(ctx) {
		if item.ID == itemID {
			return &item, nil
		}
	}
	return nil, errors.NotFoundf("catalog item %s not found", itemID)
}

// Query returns the catalog filtered by spec, with each item's status
// reflecting live holds. The user's favorites and reservations back the view
// selector.
func (s *CatalogService) Query(ctx context.Context, userEmail string, spec catalog.FilterSpec) ([]domain.CatalogItem, error) {
	rels, err := s.relationSets(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	items := catalog.Apply(s.Items(ctx), spec, rels)

	// Overlay live holds without mutating the cached slice.
	out := make([]domain.CatalogItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Status = catalog.EffectiveStatus(&item, rels.ActiveHolds)
	}
	return out, nil
}

// relationSets assembles the user's favorites and reservations plus the
// global live-hold set.
func (s *CatalogService) relationSets(ctx context.Context, userEmail string) (catalog.RelationSets, error) {
	var rels catalog.RelationSets

	holds, err := s.store.ActiveHeldItemIDs(ctx, time.Now())
	if err != nil {
		return rels, fmt.Errorf("load active holds: %w", err)
	}
	rels.ActiveHolds = holds

	if userEmail == "" {
		return rels, nil
	}

	favs, err := s.store.GetFavorites(ctx, userEmail)
	if err != nil {
		return rels, fmt.Errorf("load favorites: %w", err)
	}
	rels.Favorites = favs.IDSet()

	reservations, err := s.store.ListReservations(ctx, userEmail)
	if err != nil {
		return rels, fmt.Errorf("load reservations: %w", err)
	}
	reserved := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		reserved[r.ItemID] = true
	}
	rels.Reserved = reserved

	return rels, nil
}

// ToggleFavorite flips an item's favorite state for the user.
// The item must exist in the current catalog.
func (s *CatalogService) ToggleFavorite(ctx context.Context, userEmail, itemID string) (bool, error) {
	if _, err := s.Item(ctx, itemID); err != nil {
		return false, err
	}
	return s.store.ToggleFavorite(ctx, userEmail, itemID)
}

// Favorites returns the user's favorited items that still exist in the
// current catalog. IDs pointing at rows dropped by a re-import are skipped.
func (s *CatalogService) Favorites(ctx context.Context, userEmail string) ([]domain.CatalogItem, error) {
	favs, err := s.store.GetFavorites(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	idSet := favs.IDSet()
	var out []domain.CatalogItem
	for _, item := range s.Items(ctx) {
		if idSet[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}
