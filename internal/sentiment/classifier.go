// Package sentiment turns review text into one of three sentiment labels with
// a confidence, on top of an opaque scoring model.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// Label is a sentiment class.
type Label string

const (
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
	Positive Label = "Positive"
)

// Labels is the class order every Predictor reports scores in.
var Labels = [3]Label{Negative, Neutral, Positive}

// Valid reports whether l is one of Labels.
func (l Label) Valid() bool {
	return l == Negative || l == Neutral || l == Positive
}

// Scores is one model output over Labels.
type Scores struct {
	Values [3]float64
	// Normalized is true when Values already are probabilities; raw logits
	// are passed through softmax first.
	Normalized bool
}

// Predictor is the model capability: given bounded text, score it over Labels.
type Predictor interface {
	Predict(ctx context.Context, text string) (Scores, error)
}

// Result is the classifier output.
type Result struct {
	Label      Label
	Confidence float64
}

const defaultMaxInputRunes = 512

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxInputRunes bounds the text handed to the Predictor.
func WithMaxInputRunes(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.maxInputRunes = n
		}
	}
}

type Classifier struct {
	predictor     Predictor
	maxInputRunes int
}

func NewClassifier(p Predictor, opts ...Option) *Classifier {
	c := &Classifier{
		predictor:     p,
		maxInputRunes: defaultMaxInputRunes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores text and picks the most probable label. Empty text is valid
// input; overlong text is truncated. Predictor failures are returned as-is.
func (c *Classifier) Classify(ctx context.Context, text string) (Result, error) {
	scores, err := c.predictor.Predict(ctx, Truncate(text, c.maxInputRunes))
	if err != nil {
		return Result{}, err
	}

	probs := scores.Values
	if !scores.Normalized {
		probs = Softmax(probs)
	}

	idx := Argmax(probs)
	conf := probs[idx]
	if math.IsNaN(conf) || conf < 0 || conf > 1 {
		return Result{}, fmt.Errorf("invalid model output %v", scores.Values)
	}
	return Result{Label: Labels[idx], Confidence: conf}, nil
}

// Softmax normalizes raw scores. The max is subtracted first so large logits
// do not overflow.
func Softmax(v [3]float64) [3]float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	var out [3]float64
	var sum float64
	for i, x := range v {
		out[i] = math.Exp(x - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Argmax returns the index of the largest value; ties go to the lowest index.
func Argmax(v [3]float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// Truncate cuts s to at most n runes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// ErrEmptyOutput is returned by predictors that got no scores back.
var ErrEmptyOutput = errors.New("model returned no scores")
