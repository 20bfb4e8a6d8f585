package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/http/response"
)

// CreateCommunityRequest represents the request body for founding a community.
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Kind        string `json:"kind" validate:"required,oneof=community club competition"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateCommunityRequest represents the request body for editing a community.
type UpdateCommunityRequest struct {
	Description string `json:"description" validate:"max=2000"`
}

// handleCreateCommunity founds a community owned by the caller.
func (s *Server) handleCreateCommunity(w http.ResponseWriter, r *http.Request) {
	var req CreateCommunityRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	c, err := s.communityService.Create(r.Context(), getEmail(r.Context()), req.Name, domain.CommunityKind(req.Kind), req.Description)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, c, s.logger)
}

// handleListCommunities returns all communities, optionally one kind.
func (s *Server) handleListCommunities(w http.ResponseWriter, r *http.Request) {
	kind := domain.CommunityKind(r.URL.Query().Get("kind"))

	communities, err := s.communityService.List(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, communities, s.logger)
}

// handleGetCommunity returns one community.
func (s *Server) handleGetCommunity(w http.ResponseWriter, r *http.Request) {
	c, err := s.communityService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, c, s.logger)
}

// handleUpdateCommunity edits a community the caller owns.
func (s *Server) handleUpdateCommunity(w http.ResponseWriter, r *http.Request) {
	var req UpdateCommunityRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	c, err := s.communityService.Update(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, c, s.logger)
}

// handleDeleteCommunity disbands a community the caller owns.
func (s *Server) handleDeleteCommunity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.communityService.Delete(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleJoinCommunity adds the caller to a community.
func (s *Server) handleJoinCommunity(w http.ResponseWriter, r *http.Request) {
	c, err := s.communityService.Join(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, c, s.logger)
}

// handleLeaveCommunity removes the caller from a community.
func (s *Server) handleLeaveCommunity(w http.ResponseWriter, r *http.Request) {
	c, err := s.communityService.Leave(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, c, s.logger)
}
