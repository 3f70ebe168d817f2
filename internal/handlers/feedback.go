package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tukerank-backend/internal/feedback"
	"tukerank-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

// FeedbackService is what the feedback routes need from the service layer.
type FeedbackService interface {
	Submit(ctx context.Context, in feedback.SubmitInput) (*feedback.SubmitResult, error)
	ListForUser(ctx context.Context, username string) ([]models.Feedback, error)
	ListAll(ctx context.Context, f feedback.Filter) ([]models.Feedback, error)
}

type FeedbackHandler struct {
	service FeedbackService
}

func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

type SubmitFeedbackRequest struct {
	Username string   `json:"username"`
	Review   string   `json:"review"`
	Rating   *float64 `json:"rating"`
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	stars := float64(feedback.DefaultStars)
	if req.Rating != nil {
		stars = *req.Rating
	}

	res, err := h.service.Submit(r.Context(), feedback.SubmitInput{
		Username: req.Username,
		Review:   req.Review,
		Stars:    stars,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// --- GET /feedback/{username} ---

func (h *FeedbackHandler) ListUserFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.service.ListForUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbacks)
}

// --- GET /admin/feedbacks ---

func (h *FeedbackHandler) ListAllFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feedbacks, err := h.service.ListAll(r.Context(), feedback.Filter{
		Sentiment: q.Get("sentiment"),
		Search:    q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbacks)
}
