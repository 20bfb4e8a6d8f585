package domain

import "time"

// Notice is one entry on the campus notice board.
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorEmail string    `json:"author_email"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewNotice creates a notice posted now.
func NewNotice(id, title, body, authorEmail, authorName string) *Notice {
	now := time.Now()
	return &Notice{
		ID:          id,
		Title:       title,
		Body:        body,
		AuthorEmail: authorEmail,
		AuthorName:  authorName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PinnedNotices is one user's set of pinned notice IDs.
type PinnedNotices struct {
	UserEmail string   `json:"user_email"`
	NoticeIDs []string `json:"notice_ids"`
}

// Toggle flips pinned state for a notice and reports the new state.
func (p *PinnedNotices) Toggle(noticeID string) bool {
	for i, id := range p.NoticeIDs {
		if id == noticeID {
			p.NoticeIDs = append(p.NoticeIDs[:i], p.NoticeIDs[i+1:]...)
			return false
		}
	}
	p.NoticeIDs = append(p.NoticeIDs, noticeID)
	return true
}
