package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// SentimentScorer turns free text into a continuous sentiment score.
// ok is false when the text carries no usable signal; the score is then
// meaningless. Implementations should return scores in [-1, 1] but callers
// clamp regardless.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (score float64, ok bool)
}

// ScorerFunc adapts a plain function to SentimentScorer.
type ScorerFunc func(ctx context.Context, text string) (float64, bool)

// Score calls f.
func (f ScorerFunc) Score(ctx context.Context, text string) (float64, bool) {
	return f(ctx, text)
}

// JournalStore is the persistence boundary for mood records.
type JournalStore interface {
	// Append persists a new record.
	Append(ctx context.Context, r Record) error

	// FetchAll returns every persisted record in insertion order.
	FetchAll(ctx context.Context) ([]Record, error)

	// DeleteMatching removes the record with the given id at the given
	// coordinate. It returns ErrNotFound when nothing matched.
	DeleteMatching(ctx context.Context, id string, at Coordinate) error
}
