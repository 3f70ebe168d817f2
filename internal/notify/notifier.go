// Package notify delivers alerts about processed feedback.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// Notifier publishes an Alert to some channel.
type Notifier interface {
	Publish(ctx context.Context, alert Alert) error
}

// Alert describes one processed feedback worth a human look.
type Alert struct {
	Username   string
	Review     string
	Rating     float64
	Sentiment  string
	Confidence float64
	NewElo     int
	EloChange  int
}

func (a Alert) Subject() string {
	return fmt.Sprintf("%s feedback for %s (%+d)", a.Sentiment, a.Username, a.EloChange)
}

// Text renders the alert as plain text.
func (a Alert) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s\n", a.Username)
	fmt.Fprintf(&b, "Rating: %s (%g/5)\n", strings.Repeat("*", stars(a.Rating)), a.Rating)
	fmt.Fprintf(&b, "Sentiment: %s (%.2f)\n", a.Sentiment, a.Confidence)
	fmt.Fprintf(&b, "Elo: %d (%+d)\n", a.NewElo, a.EloChange)
	fmt.Fprintf(&b, "Review: %s", a.Review)
	return b.String()
}

// HTML renders the alert for email bodies.
func (a Alert) HTML() string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px;">
	<h2>%s</h2>
	<p><strong>User:</strong> %s</p>
	<p><strong>Rating:</strong> %g/5</p>
	<p><strong>Sentiment:</strong> %s (%.2f)</p>
	<p><strong>Elo:</strong> %d (%+d)</p>
	<blockquote>%s</blockquote>
</div>`,
		html.EscapeString(a.Subject()),
		html.EscapeString(a.Username),
		a.Rating,
		html.EscapeString(a.Sentiment), a.Confidence,
		a.NewElo, a.EloChange,
		html.EscapeString(a.Review),
	)
}

func stars(rating float64) int {
	switch {
	case rating < 0:
		return 0
	case rating > 5:
		return 5
	}
	return int(rating)
}
