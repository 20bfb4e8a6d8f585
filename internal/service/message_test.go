package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/domain"
	apperrors "github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/store"
)

func newTestMessages(t *testing.T) (*MessageService, *store.Store) {
	t.Helper()

	st := setupServiceStore(t)
	svc := NewMessageService(st, nil, discardLogger())
	return svc, st
}

func registerUser(t *testing.T, st *store.Store, id, email string) {
	t.Helper()
	require.NoError(t, st.Users.Create(context.Background(), id, domain.NewUser(id, email, "", false)))
}

func TestMessageService_SendAndMailboxes(t *testing.T) {
	svc, st := newTestMessages(t)
	ctx := context.Background()
	registerUser(t, st, "user_ben", "ben@campus.edu")

	m, err := svc.Send(ctx, "Ana@Campus.edu", "Ben@Campus.edu", "Hi", "Lunch?")
	require.NoError(t, err)
	assert.Equal(t, "ana@campus.edu", m.FromEmail)
	assert.Equal(t, "ben@campus.edu", m.ToEmail)
	assert.False(t, m.Read)

	inbox, err := svc.Inbox(ctx, "ben@campus.edu")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, m.ID, inbox[0].ID)

	sent, err := svc.Sent(ctx, "ana@campus.edu")
	require.NoError(t, err)
	require.Len(t, sent, 1)

	anaInbox, err := svc.Inbox(ctx, "ana@campus.edu")
	require.NoError(t, err)
	assert.Empty(t, anaInbox)
}

func TestMessageService_SendRejections(t *testing.T) {
	svc, _ := newTestMessages(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "ana@campus.edu", "Ana@Campus.edu", "Hi", "me")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Recipient must have an account.
	_, err = svc.Send(ctx, "ana@campus.edu", "ghost@campus.edu", "Hi", "anyone?")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMessageService_MarkRead(t *testing.T) {
	svc, st := newTestMessages(t)
	ctx := context.Background()
	registerUser(t, st, "user_ben", "ben@campus.edu")

	m, err := svc.Send(ctx, "ana@campus.edu", "ben@campus.edu", "Hi", "Lunch?")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, "ana@campus.edu", m.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	read, err := svc.MarkRead(ctx, "ben@campus.edu", m.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	// Idempotent.
	again, err := svc.MarkRead(ctx, "ben@campus.edu", m.ID)
	require.NoError(t, err)
	assert.True(t, again.Read)
}

func TestMessageService_Delete(t *testing.T) {
	svc, st := newTestMessages(t)
	ctx := context.Background()
	registerUser(t, st, "user_ben", "ben@campus.edu")

	m, err := svc.Send(ctx, "ana@campus.edu", "ben@campus.edu", "Hi", "Lunch?")
	require.NoError(t, err)

	err = svc.Delete(ctx, "mallory@campus.edu", m.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "ana@campus.edu", m.ID))

	err = svc.Delete(ctx, "ana@campus.edu", m.ID)
	assert.ErrorIs(t, err, store.ErrMessageNotFound)
}
