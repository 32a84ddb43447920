package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/MateoL17/LinKage/internal/service"
	"github.com/MateoL17/LinKage/internal/transport/http/middleware"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// Like records a like from the authenticated user toward another user and
// reports whether that completed a match.
func (h *MatchHandler) Like(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "username is required")
		return
	}

	outcome, err := h.matchService.Like(r.Context(), username, input.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfLike):
			writeError(w, http.StatusBadRequest, "SELF_LIKE", "Cannot like yourself")
		case errors.Is(err, service.ErrUnknownUser):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.Printf("ERROR like: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (h *MatchHandler) LikesReceived(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	likes, err := h.matchService.LikesReceived(r.Context(), username)
	if err != nil {
		log.Printf("ERROR likes received: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *MatchHandler) Matches(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	matches, err := h.matchService.Matches(r.Context(), username)
	if err != nil {
		log.Printf("ERROR matches: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, matches)
}
