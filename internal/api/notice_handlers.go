package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/http/response"
)

// NoticeRequest represents the request body for creating or editing a notice.
type NoticeRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"max=10000"`
}

// handleCreateNotice posts a notice authored by the caller.
func (s *Server) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	var req NoticeRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	notice, err := s.noticeService.Create(ctx, getEmail(ctx), getDisplayName(ctx), req.Title, req.Body)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, notice, s.logger)
}

// handleListNotices returns all notices, the caller's pinned ones first.
func (s *Server) handleListNotices(w http.ResponseWriter, r *http.Request) {
	views, err := s.noticeService.List(r.Context(), getEmail(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, views, s.logger)
}

// handleGetNotice returns one notice with the caller's pinned state.
func (s *Server) handleGetNotice(w http.ResponseWriter, r *http.Request) {
	view, err := s.noticeService.Get(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, view, s.logger)
}

// handleUpdateNotice edits a notice the caller authored.
func (s *Server) handleUpdateNotice(w http.ResponseWriter, r *http.Request) {
	var req NoticeRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	notice, err := s.noticeService.Update(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id"), req.Title, req.Body)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notice, s.logger)
}

// handleDeleteNotice removes a notice the caller authored.
func (s *Server) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.noticeService.Delete(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleToggleNoticePin flips the caller's pinned state for a notice.
func (s *Server) handleToggleNoticePin(w http.ResponseWriter, r *http.Request) {
	pinned, err := s.noticeService.TogglePin(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]bool{"pinned": pinned}, s.logger)
}
