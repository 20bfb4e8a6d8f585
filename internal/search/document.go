// Package search provides full-text search functionality using Bleve.
// It enables federated search across notices, communities, and projects with
// faceted filtering and fuzzy matching.
package search

import (
	"github.com/campushub/campus-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeNotice    DocType = "notice"
	DocTypeCommunity DocType = "community"
	DocTypeProject   DocType = "project"
)

// SearchDocument is the unified document structure for the Bleve index.
// All searchable portal entities are indexed as SearchDocuments with type
// discrimination, so one query covers the whole board.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`
	Type DocType `json:"type"` // Discriminator for result grouping

	// Primary searchable text (different meaning per type)
	// Notice: title, Community: name, Project: title
	Name string `json:"name"`

	// Body text - searchable but not stored (can be large)
	Body string `json:"body,omitempty"`

	// Author display name (notice author, community owner, project owner)
	Author string `json:"author,omitempty"`

	// Community kind for exact filtering ("community", "club", "competition")
	Kind string `json:"kind,omitempty"`

	// Project tags for exact matching
	Tags []string `json:"tags,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Body != "" {
		m["body"] = d.Body
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Kind != "" {
		m["kind"] = d.Kind
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// NoticeToSearchDocument converts a domain Notice to a SearchDocument.
func NoticeToSearchDocument(n *domain.Notice) *SearchDocument {
	return &SearchDocument{
		ID:        n.ID,
		Type:      DocTypeNotice,
		Name:      n.Title,
		Body:      n.Body,
		Author:    n.AuthorName,
		CreatedAt: n.CreatedAt.UnixMilli(),
		UpdatedAt: n.UpdatedAt.UnixMilli(),
	}
}

// CommunityToSearchDocument converts a domain Community to a SearchDocument.
func CommunityToSearchDocument(c *domain.Community) *SearchDocument {
	return &SearchDocument{
		ID:        c.ID,
		Type:      DocTypeCommunity,
		Name:      c.Name,
		Body:      c.Description,
		Author:    c.OwnerEmail,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt.UnixMilli(),
		UpdatedAt: c.UpdatedAt.UnixMilli(),
	}
}

// ProjectToSearchDocument converts a domain Project to a SearchDocument.
func ProjectToSearchDocument(p *domain.Project) *SearchDocument {
	return &SearchDocument{
		ID:        p.ID,
		Type:      DocTypeProject,
		Name:      p.Title,
		Body:      p.Summary,
		Author:    p.OwnerEmail,
		Tags:      p.Tags,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}
