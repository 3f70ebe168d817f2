package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tukerank-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryUserRepo is an in-process UserRepo for local runs and tests.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Username == username {
			u := cloneUser(r.users[i])
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) CompareAndSetElo(_ context.Context, id bson.ObjectID, expected *int, next int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		u := &r.users[i]
		if u.ID != id {
			continue
		}
		switch {
		case expected == nil && u.Elo != nil:
			return false, nil
		case expected != nil && (u.Elo == nil || *u.Elo != *expected):
			return false, nil
		}
		u.Elo = &next
		return true, nil
	}
	return false, nil
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
	}
	user.ID = bson.NewObjectID()
	r.users = append(r.users, cloneUser(*user))
	return nil
}

func cloneUser(u models.User) models.User {
	if u.Elo != nil {
		elo := *u.Elo
		u.Elo = &elo
	}
	return u
}

// MemoryFeedbackRepo keeps feedback records in insertion order.
type MemoryFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks []models.Feedback
}

func NewMemoryFeedbackRepo() *MemoryFeedbackRepo {
	return &MemoryFeedbackRepo{}
}

func (r *MemoryFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	feedback.ID = bson.NewObjectID()
	r.feedbacks = append(r.feedbacks, *feedback)
	return nil
}

func (r *MemoryFeedbackRepo) ListByDriver(_ context.Context, username string) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Feedback{}
	for _, f := range r.feedbacks {
		if f.DriverID == username {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *MemoryFeedbackRepo) ListAll(_ context.Context) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Feedback, len(r.feedbacks))
	copy(out, r.feedbacks)
	return out, nil
}
