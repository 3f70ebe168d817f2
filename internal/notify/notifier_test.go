package notify

import (
	"bytes"
	"context"
	"testing"

	"tukerank-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlert() Alert {
	return Alert{
		Username:   "driver42",
		Review:     "rude & <late>",
		Rating:     1,
		Sentiment:  "Negative",
		Confidence: 0.93,
		NewElo:     987,
		EloChange:  -13,
	}
}

func TestAlertRendering(t *testing.T) {
	a := sampleAlert()
	assert.Equal(t, "Negative feedback for driver42 (-13)", a.Subject())

	text := a.Text()
	assert.Contains(t, text, "Rating: * (1/5)")
	assert.Contains(t, text, "Sentiment: Negative (0.93)")
	assert.Contains(t, text, "Elo: 987 (-13)")
	assert.Contains(t, text, "Review: rude & <late>")

	body := a.HTML()
	assert.Contains(t, body, "rude &amp; &lt;late&gt;")
	assert.NotContains(t, body, "<late>")
}

func TestLogNotifier(t *testing.T) {
	require.NoError(t, logger.SetLevelString("info"))
	var buf bytes.Buffer
	n := NewLogNotifier(logger.New(&buf))

	require.NoError(t, n.Publish(context.Background(), sampleAlert()))
	assert.Contains(t, buf.String(), "feedback alert")
	assert.Contains(t, buf.String(), "username=driver42")
}

func TestResendNotifierRequiresRecipients(t *testing.T) {
	n := NewResendNotifier("re_test", "")
	assert.Error(t, n.Publish(context.Background(), sampleAlert()))
}
