package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campushub/campus-server/internal/search"
	"github.com/campushub/campus-server/internal/store"
)

// SearchService runs full-text queries across notices, communities,
// and projects, and rebuilds the index from the store.
type SearchService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewSearchService creates a search service.
func NewSearchService(st *store.Store, index *search.SearchIndex, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  st,
		index:  index,
		logger: logger,
	}
}

// Search executes a query against the index.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// Reindex rebuilds the index from the store. It is called at startup when
// the index mapping changed and by the admin reindex endpoint.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	var docs []*search.SearchDocument

	for notice, err := range s.store.Notices.List(ctx) {
		if err != nil {
			return fmt.Errorf("list notices: %w", err)
		}
		docs = append(docs, search.NoticeToSearchDocument(notice))
	}
	for community, err := range s.store.Communities.List(ctx) {
		if err != nil {
			return fmt.Errorf("list communities: %w", err)
		}
		docs = append(docs, search.CommunityToSearchDocument(community))
	}
	for project, err := range s.store.Projects.List(ctx) {
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		docs = append(docs, search.ProjectToSearchDocument(project))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	s.logger.Info("search reindex complete", "documents", len(docs))
	return nil
}

// DocumentCount reports how many documents the index holds.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
