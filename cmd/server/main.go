package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tukerank-backend/internal/config"
	"tukerank-backend/internal/database"
	"tukerank-backend/internal/feedback"
	"tukerank-backend/internal/handlers"
	"tukerank-backend/internal/logger"
	"tukerank-backend/internal/metrics"
	"tukerank-backend/internal/models"
	"tukerank-backend/internal/notify"
	"tukerank-backend/internal/repository"
	"tukerank-backend/internal/sentiment"
)

const shutdownTimeout = 10 * time.Second

type userStore interface {
	feedback.UserStore
	handlers.UserFinder
}

type stores struct {
	users     userStore
	feedbacks feedback.FeedbackStore
	close     func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init()
	log := logger.Named("server")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "ignoring log level", logger.Error(err))
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal(ctx, "failed to open store", logger.String("driver", cfg.StoreDriver), logger.Error(err))
	}

	// The model handle is created once and shared by every request.
	classifier := sentiment.NewClassifier(
		sentiment.NewHTTPPredictor(cfg.ClassifierURL, cfg.ClassifierToken, time.Duration(cfg.ClassifierTimeoutMS)*time.Millisecond),
		sentiment.WithMaxInputRunes(cfg.MaxInputRunes),
	)

	var notifier notify.Notifier = notify.NewLogNotifier(logger.Named("alerts"))
	if cfg.ResendAPIKey != "" {
		notifier = notify.NewResendNotifier(cfg.ResendAPIKey, cfg.AlertFrom, cfg.AlertTo)
	}

	m := metrics.New()
	svc := feedback.NewService(st.users, st.feedbacks, classifier,
		feedback.WithRecorder(m),
		feedback.WithNotifier(notifier),
		feedback.WithLogger(logger.Named("feedback")),
		feedback.WithRatingRetries(cfg.RatingRetries),
	)

	router := handlers.NewRouter(handlers.RouterConfig{
		Feedback:       handlers.NewFeedbackHandler(svc),
		Users:          handlers.NewUserHandler(st.users),
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        m,
		RequestLogging: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx, "tukerank starting", logger.String("addr", cfg.Addr), logger.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "server failed", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "graceful shutdown failed", logger.Error(err))
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "failed to close store", logger.Error(err))
	}
}

func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		users := repository.NewMemoryUserRepo()
		for _, name := range cfg.SeedUsers {
			if err := users.Create(ctx, &models.User{Username: name}); err != nil {
				return nil, err
			}
		}
		log.Warn(ctx, "using in-memory store, data is lost on exit", logger.Int("seed_users", len(cfg.SeedUsers)))
		return &stores{
			users:     users,
			feedbacks: repository.NewMemoryFeedbackRepo(),
			close:     func(context.Context) error { return nil },
		}, nil
	}

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "connected to MongoDB", logger.String("db", cfg.DBName))

	userRepo := repository.NewUserRepo(db, cfg.UsersCollection)
	feedbackRepo := repository.NewFeedbackRepo(db, cfg.FeedbacksCollection)

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn(ctx, "failed to create user indexes", logger.Error(err))
	}
	if err := feedbackRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn(ctx, "failed to create feedback indexes", logger.Error(err))
	}

	return &stores{
		users:     userRepo,
		feedbacks: feedbackRepo,
		close: func(ctx context.Context) error {
			return database.Disconnect(ctx, db)
		},
	}, nil
}
