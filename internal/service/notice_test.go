package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/campushub/campus-server/internal/errors"
)

func newTestNotices(t *testing.T) *NoticeService {
	t.Helper()
	return NewNoticeService(setupServiceStore(t), nil, nil, discardLogger())
}

func TestNoticeService_CreateAndGet(t *testing.T) {
	svc := newTestNotices(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, "Ana@Campus.edu", "Ana", "Library hours", "Open until 22:00 during exams")
	require.NoError(t, err)
	assert.Equal(t, "ana@campus.edu", n.AuthorEmail)

	view, err := svc.Get(ctx, "ben@campus.edu", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Library hours", view.Title)
	assert.False(t, view.Pinned)

	_, err = svc.Get(ctx, "ben@campus.edu", "notice_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNoticeService_ListPinnedFirst(t *testing.T) {
	svc := newTestNotices(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "ana@campus.edu", "Ana", "Oldest", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "ana@campus.edu", "Ana", "Middle", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "ana@campus.edu", "Ana", "Newest", "")
	require.NoError(t, err)

	// Unpinned: newest first.
	list, err := svc.List(ctx, "ben@campus.edu")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Newest", list[0].Title)

	// Pinning floats the oldest to the top, for this user only.
	pinned, err := svc.TogglePin(ctx, "ben@campus.edu", first.ID)
	require.NoError(t, err)
	assert.True(t, pinned)

	list, err = svc.List(ctx, "ben@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Oldest", list[0].Title)
	assert.True(t, list[0].Pinned)

	other, err := svc.List(ctx, "ana@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Newest", other[0].Title)
}

func TestNoticeService_TogglePinUnknownNotice(t *testing.T) {
	svc := newTestNotices(t)

	_, err := svc.TogglePin(context.Background(), "ben@campus.edu", "notice_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNoticeService_UpdateAndDeleteOwnership(t *testing.T) {
	svc := newTestNotices(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, "ana@campus.edu", "Ana", "Draft", "v1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "ben@campus.edu", false, n.ID, "Hijacked", "v2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Update(ctx, "ana@campus.edu", false, n.ID, "Final", "v2")
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)

	err = svc.Delete(ctx, "ben@campus.edu", false, n.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "staff@campus.edu", true, n.ID))
	_, err = svc.Get(ctx, "ana@campus.edu", n.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
