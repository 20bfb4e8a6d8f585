package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/search"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// NoticeService manages the campus notice board.
type NoticeService struct {
	store  *store.Store
	index  *search.SearchIndex
	events *sse.Manager
	logger *slog.Logger
}

// NewNoticeService creates a notice service. index and events may be nil in tests.
func NewNoticeService(st *store.Store, index *search.SearchIndex, events *sse.Manager, logger *slog.Logger) *NoticeService {
	return &NoticeService{
		store:  st,
		index:  index,
		events: events,
		logger: logger,
	}
}

// NoticeView is a notice with the caller's pinned state.
type NoticeView struct {
	*domain.Notice
	Pinned bool `json:"pinned"`
}

// Create posts a notice.
func (s *NoticeService) Create(ctx context.Context, authorEmail, authorName, title, body string) (*domain.Notice, error) {
	noticeID, err := id.Generate("notice")
	if err != nil {
		return nil, fmt.Errorf("generate notice ID: %w", err)
	}

	n := domain.NewNotice(noticeID, title, body, domain.NormalizeEmail(authorEmail), authorName)
	if err := s.store.Notices.Create(ctx, n.ID, n); err != nil {
		return nil, err
	}

	s.indexNotice(n)
	s.logger.Info("notice created", "notice_id", n.ID, "author", n.AuthorEmail)

	if s.events != nil {
		s.events.Emit(sse.NewNoticeCreatedEvent(n))
	}
	return n, nil
}

// Get retrieves one notice with the caller's pinned state.
func (s *NoticeService) Get(ctx context.Context, userEmail, noticeID string) (*NoticeView, error) {
	n, err := s.store.Notices.Get(ctx, noticeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNoticeNotFound
		}
		return nil, err
	}

	pins, err := s.store.GetPinnedNotices(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	return &NoticeView{Notice: n, Pinned: slices.Contains(pins.NoticeIDs, n.ID)}, nil
}

// List returns all notices, the caller's pinned ones first, then newest first.
func (s *NoticeService) List(ctx context.Context, userEmail string) ([]*NoticeView, error) {
	pins, err := s.store.GetPinnedNotices(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	pinned := make(map[string]bool, len(pins.NoticeIDs))
	for _, nid := range pins.NoticeIDs {
		pinned[nid] = true
	}

	var views []*NoticeView
	for n, err := range s.store.Notices.List(ctx) {
		if err != nil {
			return nil, err
		}
		views = append(views, &NoticeView{Notice: n, Pinned: pinned[n.ID]})
	}

	slices.SortFunc(views, func(a, b *NoticeView) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return views, nil
}

// Update edits a notice. Only the author (or an admin) may edit it.
func (s *NoticeService) Update(ctx context.Context, userEmail string, isAdmin bool, noticeID, title, body string) (*domain.Notice, error) {
	n, err := s.store.Notices.Get(ctx, noticeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNoticeNotFound
		}
		return nil, err
	}
	if !isAdmin && n.AuthorEmail != domain.NormalizeEmail(userEmail) {
		return nil, errors.Forbidden("only the author can edit this notice")
	}

	n.Title = title
	n.Body = body
	n.UpdatedAt = time.Now()

	if err := s.store.Notices.Update(ctx, n.ID, n); err != nil {
		return nil, err
	}

	s.indexNotice(n)
	if s.events != nil {
		s.events.Emit(sse.NewNoticeUpdatedEvent(n))
	}
	return n, nil
}

// Delete removes a notice. Only the author (or an admin) may remove it.
func (s *NoticeService) Delete(ctx context.Context, userEmail string, isAdmin bool, noticeID string) error {
	n, err := s.store.Notices.Get(ctx, noticeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNoticeNotFound
		}
		return err
	}
	if !isAdmin && n.AuthorEmail != domain.NormalizeEmail(userEmail) {
		return errors.Forbidden("only the author can delete this notice")
	}

	if err := s.store.Notices.Delete(ctx, noticeID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.DeleteDocument(noticeID); err != nil {
			s.logger.Warn("failed to remove notice from search index", "notice_id", noticeID, "error", err)
		}
	}
	s.logger.Info("notice deleted", "notice_id", noticeID)

	if s.events != nil {
		s.events.Emit(sse.NewNoticeDeletedEvent(noticeID))
	}
	return nil
}

// TogglePin flips the caller's pinned state for a notice and reports it.
func (s *NoticeService) TogglePin(ctx context.Context, userEmail, noticeID string) (bool, error) {
	if _, err := s.store.Notices.Get(ctx, noticeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, store.ErrNoticeNotFound
		}
		return false, err
	}
	return s.store.ToggleNoticePin(ctx, userEmail, noticeID)
}

func (s *NoticeService) indexNotice(n *domain.Notice) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexDocument(search.NoticeToSearchDocument(n)); err != nil {
		s.logger.Warn("failed to index notice", "notice_id", n.ID, "error", err)
	}
}
