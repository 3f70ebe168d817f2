package notify

import (
	"context"

	"tukerank-backend/internal/logger"
)

// LogNotifier writes alerts to the log. Used when no mail provider is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Publish(ctx context.Context, alert Alert) error {
	n.log.Info(ctx, "feedback alert",
		logger.String("subject", alert.Subject()),
		logger.String("username", alert.Username),
		logger.String("sentiment", alert.Sentiment),
		logger.Int("elo_change", alert.EloChange),
	)
	return nil
}
