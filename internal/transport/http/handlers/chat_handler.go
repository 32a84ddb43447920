package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/MateoL17/LinKage/internal/service"
	"github.com/MateoL17/LinKage/internal/transport/http/middleware"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input struct {
		Recipient   string `json:"recipient"`
		Body        string `json:"body"`
		ClientToken string `json:"client_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Recipient == "" {
		writeError(w, http.StatusBadRequest, "MISSING_RECIPIENT", "recipient is required")
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), username, input.Recipient, input.Body, input.ClientToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "EMPTY_MESSAGE", "Message body cannot be empty")
		case errors.Is(err, service.ErrRecipientUnknown):
			writeError(w, http.StatusNotFound, "RECIPIENT_UNKNOWN", "Recipient not found")
		default:
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	convs, err := h.chatService.Conversations(r.Context(), username)
	if err != nil {
		log.Printf("ERROR list conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, convs)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	counterpart := r.PathValue("username")
	if counterpart == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "counterpart username is required")
		return
	}

	messages, err := h.chatService.History(r.Context(), username, counterpart)
	if err != nil {
		log.Printf("ERROR conversation history: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	counterpart := r.PathValue("username")
	if counterpart == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "counterpart username is required")
		return
	}

	if err := h.chatService.MarkRead(r.Context(), username, counterpart); err != nil {
		log.Printf("ERROR mark read: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
