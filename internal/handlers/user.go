package handlers

import (
	"context"
	"net/http"

	"tukerank-backend/internal/apperr"
	"tukerank-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

// UserFinder looks a user up by exact username; nil, nil means no match.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type UserHandler struct {
	users UserFinder
}

func NewUserHandler(users UserFinder) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

// --- GET /users/{username} ---

func (h *UserHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		writeError(w, apperr.StoreFailure(err))
		return
	}
	if user == nil {
		writeError(w, apperr.UserNotFound("User not found"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"username": user.Username,
		"elo":      user.CurrentElo(),
	})
}
