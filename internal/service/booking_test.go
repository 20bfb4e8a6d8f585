package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/store"
)

func newTestBookings(t *testing.T) *BookingService {
	t.Helper()
	return NewBookingService(setupServiceStore(t), nil, discardLogger())
}

func bookingReq(start string, minutes int) BookingRequest {
	return BookingRequest{
		RoomID:          "room-a",
		Date:            "2026-09-01",
		Start:           start,
		DurationMinutes: minutes,
		BookedBy:        "Ana",
	}
}

func TestBookingService_CreateAndList(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)
	assert.Equal(t, "10:00", b.Start.String())
	assert.Equal(t, "11:00", b.End.String())
	assert.Equal(t, "ana@campus.edu", b.OwnerKey)

	list, err := svc.List(ctx, "room-a", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestBookingService_OverlapRejected(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)

	_, err = svc.Create(ctx, "ben@campus.edu", bookingReq("10:30", 60))
	assert.ErrorIs(t, err, store.ErrSlotOccupied)

	// Half-open intervals: back to back is fine.
	_, err = svc.Create(ctx, "ben@campus.edu", bookingReq("11:00", 60))
	assert.NoError(t, err)
}

func TestBookingService_InvalidRequests(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  BookingRequest
	}{
		{"bad date", BookingRequest{RoomID: "room-a", Date: "01-09-2026", Start: "10:00", DurationMinutes: 60}},
		{"bad clock", BookingRequest{RoomID: "room-a", Date: "2026-09-01", Start: "25:00", DurationMinutes: 60}},
		{"zero duration", BookingRequest{RoomID: "room-a", Date: "2026-09-01", Start: "10:00", DurationMinutes: 0}},
		{"crosses midnight", BookingRequest{RoomID: "room-a", Date: "2026-09-01", Start: "23:30", DurationMinutes: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "ana@campus.edu", tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestBookingService_UpdateOwnership(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "ben@campus.edu", false, b.ID, bookingReq("12:00", 60))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Admins may reschedule anyone's booking.
	moved, err := svc.Update(ctx, "staff@campus.edu", true, b.ID, bookingReq("12:00", 60))
	require.NoError(t, err)
	assert.Equal(t, "12:00", moved.Start.String())
}

func TestBookingService_UpdateKeepsRoom(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)

	req := bookingReq("12:00", 60)
	req.RoomID = "room-b"
	_, err = svc.Update(ctx, "ana@campus.edu", false, b.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBookingService_UpdateCanShiftWithinOwnSlot(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)

	// Overlapping only itself is not a conflict.
	moved, err := svc.Update(ctx, "ana@campus.edu", false, b.ID, bookingReq("10:30", 60))
	require.NoError(t, err)
	assert.Equal(t, "10:30", moved.Start.String())
	assert.Equal(t, "11:30", moved.End.String())
}

func TestBookingService_DeleteFreesSlot(t *testing.T) {
	svc := newTestBookings(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "ana@campus.edu", bookingReq("10:00", 60))
	require.NoError(t, err)

	err = svc.Delete(ctx, "ben@campus.edu", false, b.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "ana@campus.edu", false, b.ID))

	_, err = svc.Create(ctx, "ben@campus.edu", bookingReq("10:00", 60))
	assert.NoError(t, err)

	err = svc.Delete(ctx, "ana@campus.edu", false, "bk_missing")
	assert.ErrorIs(t, err, store.ErrBookingNotFound)
}
