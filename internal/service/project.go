package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/search"
	"github.com/campushub/campus-server/internal/store"
)

// ProjectService manages the student project showcase.
type ProjectService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewProjectService creates a project service. index may be nil in tests.
func NewProjectService(st *store.Store, index *search.SearchIndex, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		store:  st,
		index:  index,
		logger: logger,
	}
}

// Create publishes a project entry owned by its creator.
func (s *ProjectService) Create(ctx context.Context, ownerEmail, title, summary string, tags []string, link string) (*domain.Project, error) {
	projectID, err := id.Generate("proj")
	if err != nil {
		return nil, fmt.Errorf("generate project ID: %w", err)
	}

	p := domain.NewProject(projectID, title, summary, domain.NormalizeEmail(ownerEmail), tags, link)
	if err := s.store.Projects.Create(ctx, p.ID, p); err != nil {
		return nil, err
	}

	s.indexProject(p)
	s.logger.Info("project created", "project_id", p.ID, "owner", p.OwnerEmail)
	return p, nil
}

// Get retrieves one project.
func (s *ProjectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	p, err := s.store.Projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("project not found")
		}
		return nil, err
	}
	return p, nil
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for p, err := range s.store.Projects.List(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b *domain.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Update edits a project. Only the owner (or an admin) may edit it.
func (s *ProjectService) Update(ctx context.Context, userEmail string, isAdmin bool, projectID, title, summary string, tags []string, link string) (*domain.Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && p.OwnerEmail != domain.NormalizeEmail(userEmail) {
		return nil, errors.Forbidden("only the owner can edit this project")
	}

	p.Title = title
	p.Summary = summary
	if tags != nil {
		p.Tags = tags
	}
	p.Link = link
	p.UpdatedAt = time.Now()

	if err := s.store.Projects.Update(ctx, p.ID, p); err != nil {
		return nil, err
	}

	s.indexProject(p)
	return p, nil
}

// Delete removes a project. Only the owner (or an admin) may remove it.
func (s *ProjectService) Delete(ctx context.Context, userEmail string, isAdmin bool, projectID string) error {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if !isAdmin && p.OwnerEmail != domain.NormalizeEmail(userEmail) {
		return errors.Forbidden("only the owner can delete this project")
	}

	if err := s.store.Projects.Delete(ctx, projectID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.DeleteDocument(projectID); err != nil {
			s.logger.Warn("failed to remove project from search index", "project_id", projectID, "error", err)
		}
	}
	s.logger.Info("project deleted", "project_id", projectID)
	return nil
}

func (s *ProjectService) indexProject(p *domain.Project) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexDocument(search.ProjectToSearchDocument(p)); err != nil {
		s.logger.Warn("failed to index project", "project_id", p.ID, "error", err)
	}
}
