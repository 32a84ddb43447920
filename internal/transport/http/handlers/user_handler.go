package handlers

import (
	"log"
	"net/http"

	"github.com/MateoL17/LinKage/internal/service"
	"github.com/MateoL17/LinKage/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Discover lists every profile except the caller's own.
func (h *UserHandler) Discover(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	profiles, err := h.userService.Discover(r.Context(), username)
	if err != nil {
		log.Printf("ERROR discover: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}
