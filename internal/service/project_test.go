package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/campushub/campus-server/internal/errors"
)

func newTestProjects(t *testing.T) *ProjectService {
	t.Helper()
	return NewProjectService(setupServiceStore(t), nil, discardLogger())
}

func TestProjectService_CreateAndGet(t *testing.T) {
	svc := newTestProjects(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Ana@Campus.edu", "Air quality monitor", "Sensors across campus", []string{"iot"}, "")
	require.NoError(t, err)
	assert.Equal(t, "ana@campus.edu", p.OwnerEmail)
	assert.Equal(t, []string{"iot"}, p.Tags)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Air quality monitor", got.Title)

	_, err = svc.Get(ctx, "proj-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjectService_ListNewestFirst(t *testing.T) {
	svc := newTestProjects(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, "ana@campus.edu", "Older", "", nil, "")
	require.NoError(t, err)
	newer, err := svc.Create(ctx, "luis@campus.edu", "Newer", "", nil, "")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestProjectService_UpdateOwnership(t *testing.T) {
	svc := newTestProjects(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "ana@campus.edu", "Scraper", "v1", []string{"tooling"}, "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "luis@campus.edu", false, p.ID, "Scraper", "hijacked", nil, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Nil tags keep the existing ones.
	updated, err := svc.Update(ctx, "ana@campus.edu", false, p.ID, "Scraper", "v2", nil, "https://example.edu/scraper")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Summary)
	assert.Equal(t, []string{"tooling"}, updated.Tags)
	assert.Equal(t, "https://example.edu/scraper", updated.Link)
}

func TestProjectService_DeleteOwnership(t *testing.T) {
	svc := newTestProjects(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "ana@campus.edu", "Doomed", "", nil, "")
	require.NoError(t, err)

	err = svc.Delete(ctx, "luis@campus.edu", false, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Admins can remove anyone's project.
	err = svc.Delete(ctx, "dean@campus.edu", true, p.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
