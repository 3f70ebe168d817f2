// Package feedback runs the review pipeline: classify the review text, fold
// the result into the reviewed user's rating, and keep an audit record.
package feedback

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"tukerank-backend/internal/apperr"
	"tukerank-backend/internal/logger"
	"tukerank-backend/internal/models"
	"tukerank-backend/internal/notify"
	"tukerank-backend/internal/rating"
	"tukerank-backend/internal/sentiment"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultStars is used when a submission carries no star rating.
const DefaultStars = 3

const defaultRatingRetries = 5

// ErrRatingConflict is the cause reported when every compare-and-set attempt
// lost to a concurrent update.
var ErrRatingConflict = errors.New("rating changed concurrently, retries exhausted")

type UserStore interface {
	// FindByUsername returns nil, nil when no user matches.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CompareAndSetElo(ctx context.Context, id bson.ObjectID, expected *int, next int) (bool, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListByDriver(ctx context.Context, username string) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (sentiment.Result, error)
}

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveClassification(d time.Duration)
	FeedbackProcessed(sentiment string, eloChange int)
	FeedbackFailed(kind string)
	RatingConflict()
}

type nopRecorder struct{}

func (nopRecorder) ObserveClassification(time.Duration) {}
func (nopRecorder) FeedbackProcessed(string, int) {}
func (nopRecorder) FeedbackFailed(string) {}
func (nopRecorder) RatingConflict() {}

// Option configures a Service.
type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithNotifier sets where alerts for Negative feedback go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithRatingRetries caps compare-and-set attempts per submission.
func WithRatingRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retries = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	users      UserStore
	feedbacks  FeedbackStore
	classifier Classifier
	validate   *validator.Validate

	recorder Recorder
	notifier notify.Notifier
	log      logger.Logger
	retries  int
	now      func() time.Time
}

func NewService(users UserStore, feedbacks FeedbackStore, classifier Classifier, opts ...Option) *Service {
	s := &Service{
		users:      users,
		feedbacks:  feedbacks,
		classifier: classifier,
		validate:   validator.New(),
		recorder:   nopRecorder{},
		log:        logger.Nop(),
		retries:    defaultRatingRetries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitInput is one review of Username.
type SubmitInput struct {
	Username string `validate:"required"`
	Review   string
	// Stars is the rating out of 5. It is not range-checked.
	Stars float64
}

// SubmitResult summarizes a processed submission. Confidence is the raw
// classifier value; the stored record keeps it rounded to two decimals.
type SubmitResult struct {
	Message    string  `json:"message"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	NewElo     int     `json:"newElo"`
	EloChange  int     `json:"eloChange"`
}

// Submit classifies the review, updates the user's rating and appends the
// feedback record. The rating write and the record insert are separate
// writes: if the insert fails the rating change stays applied.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	res, err := s.submit(ctx, in)
	if err != nil {
		kind := apperr.KindOf(err)
		s.recorder.FeedbackFailed(string(kind))
		if kind != apperr.KindMissingField && kind != apperr.KindUserNotFound {
			s.log.Error(ctx, "feedback submission failed", logger.String("username", in.Username), logger.Error(err))
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.MissingField("Missing username")
	}

	start := s.now()
	verdict, err := s.classifier.Classify(ctx, in.Review)
	s.recorder.ObserveClassification(s.now().Sub(start))
	if err != nil {
		return nil, apperr.ClassificationFailed(err)
	}

	newElo, change, err := s.applyRating(ctx, in.Username, verdict.Label, in.Stars)
	if err != nil {
		return nil, err
	}

	record := &models.Feedback{
		EventID:    uuid.NewString(),
		DriverID:   in.Username,
		Review:     in.Review,
		Rating:     in.Stars,
		Sentiment:  string(verdict.Label),
		Confidence: roundConfidence(verdict.Confidence),
		EloChange:  change,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.feedbacks.Create(ctx, record); err != nil {
		return nil, apperr.StoreFailure(err)
	}

	s.recorder.FeedbackProcessed(record.Sentiment, change)
	s.log.Info(ctx, "feedback processed",
		logger.String("username", in.Username),
		logger.String("sentiment", record.Sentiment),
		logger.Int("new_elo", newElo),
		logger.Int("elo_change", change),
	)

	if verdict.Label == sentiment.Negative && s.notifier != nil {
		s.alert(notify.Alert{
			Username:   in.Username,
			Review:     in.Review,
			Rating:     in.Stars,
			Sentiment:  record.Sentiment,
			Confidence: verdict.Confidence,
			NewElo:     newElo,
			EloChange:  change,
		})
	}

	return &SubmitResult{
		Message:    "Feedback processed",
		Sentiment:  string(verdict.Label),
		Confidence: verdict.Confidence,
		NewElo:     newElo,
		EloChange:  change,
	}, nil
}

// applyRating runs read -> compute -> compare-and-set, re-reading on conflict.
func (s *Service) applyRating(ctx context.Context, username string, label sentiment.Label, stars float64) (int, int, error) {
	for attempt := 0; attempt < s.retries; attempt++ {
		user, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return 0, 0, apperr.StoreFailure(err)
		}
		if user == nil {
			return 0, 0, apperr.UserNotFound("User not found")
		}

		newElo, change := rating.Update(user.CurrentElo(), label, stars)
		ok, err := s.users.CompareAndSetElo(ctx, user.ID, user.Elo, newElo)
		if err != nil {
			return 0, 0, apperr.StoreFailure(err)
		}
		if ok {
			return newElo, change, nil
		}
		s.recorder.RatingConflict()
		s.log.Warn(ctx, "rating update conflict, retrying",
			logger.String("username", username),
			logger.Int("attempt", attempt+1),
		)
	}
	return 0, 0, apperr.StoreFailure(ErrRatingConflict)
}

// alert fires the notifier off the request path; failures are logged only.
func (s *Service) alert(a notify.Alert) {
	go func() {
		ctx := context.Background()
		if err := s.notifier.Publish(ctx, a); err != nil {
			s.log.Warn(ctx, "feedback alert failed", logger.String("username", a.Username), logger.Error(err))
		}
	}()
}

func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}

// ListForUser returns the feedback recorded for username in storage order.
// No records is an empty slice, not an error.
func (s *Service) ListForUser(ctx context.Context, username string) ([]models.Feedback, error) {
	feedbacks, err := s.feedbacks.ListByDriver(ctx, username)
	if err != nil {
		return nil, apperr.StoreFailure(err)
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	return feedbacks, nil
}

// Filter narrows ListAll. Zero values match everything.
type Filter struct {
	Sentiment string
	// Search is matched case-insensitively against the review text.
	Search string
}

func (f Filter) match(fb models.Feedback) bool {
	if f.Sentiment != "" && fb.Sentiment != f.Sentiment {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(fb.Review), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// ListAll scans every record and keeps those matching f.
func (s *Service) ListAll(ctx context.Context, f Filter) ([]models.Feedback, error) {
	all, err := s.feedbacks.ListAll(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(err)
	}

	out := []models.Feedback{}
	for _, fb := range all {
		if f.match(fb) {
			out = append(out, fb)
		}
	}
	return out, nil
}
