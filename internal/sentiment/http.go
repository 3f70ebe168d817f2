package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const maxErrorBody = 512

// HTTPPredictor calls a model-serving endpoint. It understands the two common
// response shapes of sequence-classification servers:
//
//	[[{"label":"LABEL_0","score":0.02}, ...]]   probabilities per label
//	{"logits":[-1.2, 0.3, 2.9]} or [-1.2, 0.3, 2.9]   raw logits in Labels order
type HTTPPredictor struct {
	url    string
	token  string
	client *http.Client
}

func NewHTTPPredictor(url, token string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPPredictor) Predict(ctx context.Context, text string) (Scores, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Scores{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return Scores{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Scores{}, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Scores{}, fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return Scores{}, fmt.Errorf("model returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return ParseScores(raw)
}

// ParseScores decodes a model response body into Scores.
func ParseScores(raw []byte) (Scores, error) {
	if !gjson.ValidBytes(raw) {
		return Scores{}, fmt.Errorf("model response is not JSON")
	}
	root := gjson.ParseBytes(raw)

	if logits := root.Get("logits"); logits.Exists() {
		root = logits
	}
	if !root.IsArray() {
		return Scores{}, fmt.Errorf("unexpected model response: %s", root.Raw)
	}

	items := root.Array()
	// Batched responses wrap one result per input; we always send one.
	for len(items) == 1 && items[0].IsArray() {
		items = items[0].Array()
	}
	if len(items) == 0 {
		return Scores{}, ErrEmptyOutput
	}

	if items[0].IsObject() {
		return parseLabelled(items)
	}
	return parseLogits(items)
}

func parseLogits(items []gjson.Result) (Scores, error) {
	if len(items) != len(Labels) {
		return Scores{}, fmt.Errorf("expected %d logits, got %d", len(Labels), len(items))
	}
	var s Scores
	for i, it := range items {
		if it.Type != gjson.Number {
			return Scores{}, fmt.Errorf("logit %d is not a number: %s", i, it.Raw)
		}
		s.Values[i] = it.Float()
	}
	return s, nil
}

func parseLabelled(items []gjson.Result) (Scores, error) {
	s := Scores{Normalized: true}
	var seen [3]bool
	for _, it := range items {
		idx, ok := labelIndex(it.Get("label").String())
		if !ok {
			return Scores{}, fmt.Errorf("unknown model label %q", it.Get("label").String())
		}
		score := it.Get("score")
		if score.Type != gjson.Number {
			return Scores{}, fmt.Errorf("label %q has no numeric score", it.Get("label").String())
		}
		s.Values[idx] = score.Float()
		seen[idx] = true
	}
	for i, ok := range seen {
		if !ok {
			return Scores{}, fmt.Errorf("model response missing label %s", Labels[i])
		}
	}
	return s, nil
}

func labelIndex(label string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "label_0", "negative", "neg":
		return 0, true
	case "label_1", "neutral", "neu":
		return 1, true
	case "label_2", "positive", "pos":
		return 2, true
	}
	return 0, false
}
