package domain

import (
	"slices"
	"time"
)

// CommunityKind distinguishes the portal's group flavors.
// Clubs and competitions share the community machinery instead of living in
// parallel modules.
type CommunityKind string

// Community kinds.
const (
	KindCommunity   CommunityKind = "community"
	KindClub        CommunityKind = "club"
	KindCompetition CommunityKind = "competition"
)

// ValidKind reports whether k is a known community kind.
func ValidKind(k CommunityKind) bool {
	switch k {
	case KindCommunity, KindClub, KindCompetition:
		return true
	}
	return false
}

// Community is a student group: a community, club, or competition.
type Community struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Kind         CommunityKind `json:"kind"`
	Description  string        `json:"description"`
	OwnerEmail   string        `json:"owner_email"`
	MemberEmails []string      `json:"member_emails"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewCommunity creates a community owned (and joined) by its creator.
func NewCommunity(id, name string, kind CommunityKind, description, ownerEmail string) *Community {
	now := time.Now()
	return &Community{
		ID:           id,
		Name:         name,
		Kind:         kind,
		Description:  description,
		OwnerEmail:   ownerEmail,
		MemberEmails: []string{ownerEmail},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Join adds a member. Returns false if already a member.
func (c *Community) Join(email string) bool {
	if slices.Contains(c.MemberEmails, email) {
		return false
	}
	c.MemberEmails = append(c.MemberEmails, email)
	c.UpdatedAt = time.Now()
	return true
}

// Leave removes a member. Returns false if not a member.
// The owner cannot leave their own community.
func (c *Community) Leave(email string) bool {
	if email == c.OwnerEmail {
		return false
	}
	for i, m := range c.MemberEmails {
		if m == email {
			c.MemberEmails = append(c.MemberEmails[:i], c.MemberEmails[i+1:]...)
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// HasMember reports membership.
func (c *Community) HasMember(email string) bool {
	return slices.Contains(c.MemberEmails, email)
}
