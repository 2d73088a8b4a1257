package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bingelist/internal/store"
	"bingelist/shared/go/models"
)

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	partners, err := s.messages.Inbox(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if partners == nil {
		partners = []models.User{}
	}

	writeJSON(w, http.StatusOK, struct {
		Partners []models.User `json:"partners"`
	}{Partners: partners})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	conversation, err := s.messages.Conversation(r.Context(), userID, r.PathValue("username"))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if conversation == nil {
		conversation = []models.Message{}
	}

	writeJSON(w, http.StatusOK, struct {
		Messages []models.Message `json:"messages"`
	}{Messages: conversation})
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	s.sendMessage(w, r, r.PathValue("username"))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	s.sendMessage(w, r, "")
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request, recipient string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Recipient string `json:"recipient"`
		Body      string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if recipient == "" {
		recipient = strings.TrimSpace(req.Recipient)
	}

	sent, err := s.messages.Send(r.Context(), userID, recipient, req.Body)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "recipient not found"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, sent)
}
