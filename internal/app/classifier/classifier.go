// Package classifier maps free text to an emotional category.
//
// The pipeline:
//  1. Ask the injected SentimentScorer for a score
//  2. Clamp the score into [-1, 1]
//  3. Pick the category band the clamped score falls in
//  4. Derive intensity as the distance from neutral
//
// Text that cannot be scored is Neutral with zero intensity.
package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/moodmap/moodmap/internal/domain"
	"github.com/moodmap/moodmap/internal/infra/observability"
)

// band is one category's score range. A score belongs to the first band,
// scanning from the top, whose lower bound it reaches.
type band struct {
	min       float64
	inclusive bool // min itself belongs to this band
	category  domain.Category
}

// bands partition [-1, 1]. Neutral is open at -0.2 so that exactly -0.2
// reads as Reflective.
var bands = [...]band{
	{0.8, true, domain.Euphoric},
	{0.5, true, domain.Joyful},
	{0.2, true, domain.Content},
	{-0.2, false, domain.Neutral},
	{-0.5, true, domain.Reflective},
	{-0.8, true, domain.Melancholic},
	{-1.0, true, domain.Distressed},
}

// Clamp limits score to [-1, 1]. NaN clamps to 0.
func Clamp(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score > 1:
		return 1
	case score < -1:
		return -1
	}
	return score
}

// Classify clamps score and returns its category. The bands cover the whole
// clamped interval; running off the end is a programming error.
func Classify(score float64) domain.Category {
	s := Clamp(score)
	for _, b := range bands {
		if s > b.min || (b.inclusive && s == b.min) {
			return b.category
		}
	}
	panic(fmt.Sprintf("classifier: clamped score %v matched no band", s))
}

// Intensity returns abs(clamp(score)), always in [0, 1].
func Intensity(score float64) float64 {
	return math.Abs(Clamp(score))
}

// Analysis is the outcome of classifying one piece of text.
type Analysis struct {
	Category  domain.Category `json:"label"`
	Intensity float64         `json:"intensity"`
	Score     float64         `json:"score"`  // clamped; 0 when unscored
	Scored    bool            `json:"scored"` // false when the Neutral fallback applied
}

// Classifier classifies text with an injected scorer.
type Classifier struct {
	scorer domain.SentimentScorer
}

// New creates a Classifier backed by scorer.
func New(scorer domain.SentimentScorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Analyze scores text and returns its category and intensity.
// Blank or unscoreable text yields (Neutral, 0).
func (c *Classifier) Analyze(ctx context.Context, text string) Analysis {
	text = strings.TrimSpace(text)
	if text == "" || c.scorer == nil {
		return c.fallback()
	}

	raw, ok := c.scorer.Score(ctx, text)
	if !ok {
		return c.fallback()
	}

	s := Clamp(raw)
	a := Analysis{
		Category:  Classify(s),
		Intensity: math.Abs(s),
		Score:     s,
		Scored:    true,
	}
	observability.Classifications.WithLabelValues(a.Category.String()).Inc()
	return a
}

// TextToLabel returns only the category of text.
func (c *Classifier) TextToLabel(ctx context.Context, text string) domain.Category {
	return c.Analyze(ctx, text).Category
}

func (c *Classifier) fallback() Analysis {
	observability.UnscoredInputs.Inc()
	observability.Classifications.WithLabelValues(domain.Neutral.String()).Inc()
	return Analysis{Category: domain.Neutral}
}
