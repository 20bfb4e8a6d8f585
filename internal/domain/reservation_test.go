package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReservation(t *testing.T) {
	item := &CatalogItem{
		ID:     "salud-3",
		Title:  "Intro to Stats",
		Area:   "Salud",
		Status: StatusAvailable,
	}

	r := NewReservation("rsv-1", item, "ada@student.example.edu", DefaultHoldDuration)

	assert.Equal(t, "salud-3", r.ItemID)
	assert.Equal(t, "Intro to Stats", r.ItemTitle)
	assert.Equal(t, "ada@student.example.edu", r.UserEmail)
	assert.Equal(t, r.CreatedAt.Add(20*24*time.Hour), r.ExpiresAt)
}

func TestReservationExpiry(t *testing.T) {
	r := &Reservation{
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC),
	}

	before := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	assert.True(t, r.IsActive(before))
	assert.Equal(t, 24*time.Hour, r.Remaining(before))

	after := time.Date(2026, 3, 22, 12, 0, 0, 0, time.UTC)
	assert.False(t, r.IsActive(after))
	// An expired hold stays listable with negative remaining time.
	assert.Equal(t, -24*time.Hour, r.Remaining(after))

	// The boundary instant itself is expired.
	assert.False(t, r.IsActive(r.ExpiresAt))
}

func TestFavoriteToggleIdempotentPair(t *testing.T) {
	f := &FavoriteSet{UserEmail: "ada@student.example.edu"}

	assert.True(t, f.Toggle("salud-1"))
	assert.True(t, f.Contains("salud-1"))

	assert.False(t, f.Toggle("salud-1"))
	assert.False(t, f.Contains("salud-1"))
	assert.Empty(t, f.ItemIDs)
}

func TestFavoriteIDSet(t *testing.T) {
	f := &FavoriteSet{ItemIDs: []string{"a-1", "a-2"}}
	set := f.IDSet()
	assert.True(t, set["a-1"])
	assert.True(t, set["a-2"])
	assert.False(t, set["a-3"])
}

func TestCommunityMembership(t *testing.T) {
	c := NewCommunity("com-1", "Chess Club", KindClub, "", "owner@student.example.edu")

	assert.True(t, c.HasMember("owner@student.example.edu"))

	assert.True(t, c.Join("ada@student.example.edu"))
	assert.False(t, c.Join("ada@student.example.edu"), "joining twice is a no-op")

	assert.True(t, c.Leave("ada@student.example.edu"))
	assert.False(t, c.Leave("ada@student.example.edu"))

	// Owners cannot abandon their own community.
	assert.False(t, c.Leave("owner@student.example.edu"))
	assert.True(t, c.HasMember("owner@student.example.edu"))
}
