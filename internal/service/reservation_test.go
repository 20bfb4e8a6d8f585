package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/domain"
	apperrors "github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/store"
)

const reservationCSV = `Banner
Título;Autor/a;Materias;Resumen;Estado
Libro Uno;A;;;Disponible
Libro Dos;B;;;Disponible
Libro Tres;C;;;Disponible
Libro Cuatro;D;;;Disponible
`

func newTestReservations(t *testing.T, maxActive int) (*ReservationService, *CatalogService) {
	t.Helper()

	st := setupServiceStore(t)
	cat := newTestCatalog(t, st, writeCatalogFile(t, "general", reservationCSV))
	svc := NewReservationService(st, cat, nil, domain.DefaultHoldDuration, maxActive, discardLogger())
	return svc, cat
}

func TestReservationService_ReserveAndList(t *testing.T) {
	svc, _ := newTestReservations(t, 3)
	ctx := context.Background()

	view, err := svc.Reserve(ctx, "Ana@Campus.edu", "general-0")
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, "ana@campus.edu", view.UserEmail)
	assert.Equal(t, "Libro Uno", view.ItemTitle)
	// 20-day hold, freshly placed.
	assert.InDelta(t, (20 * 24 * time.Hour).Seconds(), float64(view.RemainingSeconds), 5)

	list, err := svc.List(ctx, "ana@campus.edu")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, view.ID, list[0].ID)
}

func TestReservationService_ReserveUnknownItem(t *testing.T) {
	svc, _ := newTestReservations(t, 3)

	_, err := svc.Reserve(context.Background(), "ana@campus.edu", "general-99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReservationService_ExclusivityAndDuplicate(t *testing.T) {
	svc, _ := newTestReservations(t, 3)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "ana@campus.edu", "general-0")
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, "ben@campus.edu", "general-0")
	assert.ErrorIs(t, err, store.ErrItemHeld)

	_, err = svc.Reserve(ctx, "ana@campus.edu", "general-0")
	assert.ErrorIs(t, err, store.ErrDuplicateReservation)
}

func TestReservationService_CapacityLimit(t *testing.T) {
	svc, _ := newTestReservations(t, 3)
	ctx := context.Background()

	for _, itemID := range []string{"general-0", "general-1", "general-2"} {
		_, err := svc.Reserve(ctx, "ana@campus.edu", itemID)
		require.NoError(t, err)
	}

	_, err := svc.Reserve(ctx, "ana@campus.edu", "general-3")
	assert.ErrorIs(t, err, store.ErrReservationLimit)
}

func TestReservationService_CancelFreesItem(t *testing.T) {
	svc, _ := newTestReservations(t, 3)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "ana@campus.edu", "general-0")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "ana@campus.edu", "general-0"))

	_, err = svc.Reserve(ctx, "ben@campus.edu", "general-0")
	assert.NoError(t, err)
}

func TestReservationService_CancelNotFound(t *testing.T) {
	svc, _ := newTestReservations(t, 3)

	err := svc.Cancel(context.Background(), "ana@campus.edu", "general-0")
	assert.ErrorIs(t, err, store.ErrReservationNotFound)
}

func TestReservationService_HoldOverlaysCatalogStatus(t *testing.T) {
	svc, cat := newTestReservations(t, 3)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "ana@campus.edu", "general-0")
	require.NoError(t, err)

	// Everyone sees the held item as loaned, regardless of the import status.
	items, err := cat.Query(ctx, "ben@campus.edu", catalog.FilterSpec{})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, domain.StatusLoaned, items[0].Status)
	assert.Equal(t, domain.StatusAvailable, items[1].Status)

	// The holder's reserved view selects it.
	reserved, err := cat.Query(ctx, "ana@campus.edu", catalog.FilterSpec{View: catalog.ViewReserved})
	require.NoError(t, err)
	require.Len(t, reserved, 1)
	assert.Equal(t, "general-0", reserved[0].ID)
}
