package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/search"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// CommunityService manages student groups: communities, clubs, and
// competitions share this machinery, distinguished by kind.
type CommunityService struct {
	store  *store.Store
	index  *search.SearchIndex
	events *sse.Manager
	logger *slog.Logger
}

// NewCommunityService creates a community service. index and events may be nil in tests.
func NewCommunityService(st *store.Store, index *search.SearchIndex, events *sse.Manager, logger *slog.Logger) *CommunityService {
	return &CommunityService{
		store:  st,
		index:  index,
		events: events,
		logger: logger,
	}
}

// Create founds a community owned by its creator.
// Names are unique across all kinds.
func (s *CommunityService) Create(ctx context.Context, ownerEmail, name string, kind domain.CommunityKind, description string) (*domain.Community, error) {
	if !domain.ValidKind(kind) {
		return nil, errors.Validationf("unknown community kind %q", kind)
	}

	communityID, err := id.Generate("comm")
	if err != nil {
		return nil, fmt.Errorf("generate community ID: %w", err)
	}

	c := domain.NewCommunity(communityID, name, kind, description, domain.NormalizeEmail(ownerEmail))
	if err := s.store.Communities.Create(ctx, c.ID, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists(fmt.Sprintf("a community named %q already exists", name))
		}
		return nil, err
	}

	s.indexCommunity(c)
	s.logger.Info("community created", "community_id", c.ID, "kind", c.Kind, "owner", c.OwnerEmail)

	if s.events != nil {
		s.events.Emit(sse.NewCommunityCreatedEvent(c))
	}
	return c, nil
}

// Get retrieves one community.
func (s *CommunityService) Get(ctx context.Context, communityID string) (*domain.Community, error) {
	c, err := s.store.Communities.Get(ctx, communityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("community not found")
		}
		return nil, err
	}
	return c, nil
}

// List returns all communities, optionally restricted to one kind,
// alphabetized by name.
func (s *CommunityService) List(ctx context.Context, kind domain.CommunityKind) ([]*domain.Community, error) {
	if kind != "" && !domain.ValidKind(kind) {
		return nil, errors.Validationf("unknown community kind %q", kind)
	}

	var out []*domain.Community
	for c, err := range s.store.Communities.List(ctx) {
		if err != nil {
			return nil, err
		}
		if kind != "" && c.Kind != kind {
			continue
		}
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b *domain.Community) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Update edits a community's description. Only the owner (or an admin) may edit.
func (s *CommunityService) Update(ctx context.Context, userEmail string, isAdmin bool, communityID, description string) (*domain.Community, error) {
	c, err := s.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && c.OwnerEmail != domain.NormalizeEmail(userEmail) {
		return nil, errors.Forbidden("only the owner can edit this community")
	}

	c.Description = description
	c.UpdatedAt = time.Now()

	if err := s.store.Communities.Update(ctx, c.ID, c); err != nil {
		return nil, err
	}

	s.indexCommunity(c)
	if s.events != nil {
		s.events.Emit(sse.NewCommunityUpdatedEvent(c))
	}
	return c, nil
}

// Delete disbands a community. Only the owner (or an admin) may do this.
func (s *CommunityService) Delete(ctx context.Context, userEmail string, isAdmin bool, communityID string) error {
	c, err := s.Get(ctx, communityID)
	if err != nil {
		return err
	}
	if !isAdmin && c.OwnerEmail != domain.NormalizeEmail(userEmail) {
		return errors.Forbidden("only the owner can disband this community")
	}

	if err := s.store.Communities.Delete(ctx, communityID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.DeleteDocument(communityID); err != nil {
			s.logger.Warn("failed to remove community from search index", "community_id", communityID, "error", err)
		}
	}
	s.logger.Info("community deleted", "community_id", communityID)
	return nil
}

// Join adds the user to a community's member list.
func (s *CommunityService) Join(ctx context.Context, userEmail, communityID string) (*domain.Community, error) {
	c, err := s.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}

	if !c.Join(domain.NormalizeEmail(userEmail)) {
		return nil, errors.AlreadyExists("already a member")
	}

	if err := s.store.Communities.Update(ctx, c.ID, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Emit(sse.NewCommunityUpdatedEvent(c))
	}
	return c, nil
}

// Leave removes the user from a community. The owner cannot leave; they must
// delete the community or keep it.
func (s *CommunityService) Leave(ctx context.Context, userEmail, communityID string) (*domain.Community, error) {
	c, err := s.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(userEmail)
	if email == c.OwnerEmail {
		return nil, errors.Conflict("the owner cannot leave their own community")
	}
	if !c.Leave(email) {
		return nil, errors.NotFound("not a member")
	}

	if err := s.store.Communities.Update(ctx, c.ID, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Emit(sse.NewCommunityUpdatedEvent(c))
	}
	return c, nil
}

func (s *CommunityService) indexCommunity(c *domain.Community) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexDocument(search.CommunityToSearchDocument(c)); err != nil {
		s.logger.Warn("failed to index community", "community_id", c.ID, "error", err)
	}
}
