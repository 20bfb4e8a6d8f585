package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/http/response"
)

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"max=10000"`
}

// handleSendMessage delivers a message from the caller to another user.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	msg, err := s.messageService.Send(r.Context(), getEmail(r.Context()), req.To, req.Subject, req.Body)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, msg, s.logger)
}

// handleInbox returns messages received by the caller, newest first.
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messageService.Inbox(r.Context(), getEmail(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, msgs, s.logger)
}

// handleSent returns messages sent by the caller, newest first.
func (s *Server) handleSent(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messageService.Sent(r.Context(), getEmail(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, msgs, s.logger)
}

// handleMarkMessageRead marks a received message as read.
func (s *Server) handleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	msg, err := s.messageService.MarkRead(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, msg, s.logger)
}

// handleDeleteMessage removes a message the caller sent or received.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.messageService.Delete(r.Context(), getEmail(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
