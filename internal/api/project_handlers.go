package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/http/response"
)

// ProjectRequest represents the request body for creating or editing a project.
type ProjectRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Summary string   `json:"summary" validate:"max=5000"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
	Link    string   `json:"link" validate:"omitempty,url"`
}

// handleCreateProject publishes a project entry owned by the caller.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	p, err := s.projectService.Create(r.Context(), getEmail(r.Context()), req.Title, req.Summary, req.Tags, req.Link)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, p, s.logger)
}

// handleListProjects returns all projects, newest first.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projectService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, projects, s.logger)
}

// handleGetProject returns one project.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, p, s.logger)
}

// handleUpdateProject edits a project the caller owns.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	p, err := s.projectService.Update(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id"), req.Title, req.Summary, req.Tags, req.Link)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, p, s.logger)
}

// handleDeleteProject removes a project the caller owns.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.projectService.Delete(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
