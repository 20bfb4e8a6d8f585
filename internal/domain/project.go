package domain

import "time"

// Project is a student project showcase entry.
type Project struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	OwnerEmail string    `json:"owner_email"`
	Tags       []string  `json:"tags"`
	Link       string    `json:"link"` // Optional external URL
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProject creates a showcase entry created now.
func NewProject(id, title, summary, ownerEmail string, tags []string, link string) *Project {
	now := time.Now()
	if tags == nil {
		tags = []string{}
	}
	return &Project{
		ID:         id,
		Title:      title,
		Summary:    summary,
		OwnerEmail: ownerEmail,
		Tags:       tags,
		Link:       link,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
