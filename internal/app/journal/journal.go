// Package journal owns the in-memory mood journal: the record cache, its
// summary, and the location permission gate in front of record creation.
//
// A Journal is the single mutator of its cache. Every mutation persists
// first and only then touches the cache, so readers never see a record the
// store did not accept.
package journal

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moodmap/moodmap/internal/app/aggregator"
	"github.com/moodmap/moodmap/internal/app/classifier"
	"github.com/moodmap/moodmap/internal/domain"
	"github.com/moodmap/moodmap/internal/infra/observability"
	"github.com/moodmap/moodmap/internal/logging"
)

// Journal coordinates the store, classifier and aggregator.
type Journal struct {
	mu         sync.Mutex
	store      domain.JournalStore
	classifier *classifier.Classifier
	log        logging.Logger

	now   func() time.Time
	newID func() string

	permission domain.PermissionState
	records    []domain.Record
	summary    aggregator.Summary
	last       time.Time // newest CreatedAt handed out or loaded
}

// Option customizes a Journal.
type Option func(*Journal)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithIDs replaces the uuid id generator.
func WithIDs(newID func() string) Option {
	return func(j *Journal) { j.newID = newID }
}

// WithLogger sets the logger. The default discards.
func WithLogger(log logging.Logger) Option {
	return func(j *Journal) { j.log = log }
}

// New creates an empty journal with permission Unknown. Call Load to fill
// the cache from the store.
func New(store domain.JournalStore, c *classifier.Classifier, opts ...Option) *Journal {
	j := &Journal{
		store:      store,
		classifier: c,
		log:        logging.Discard(),
		now:        time.Now,
		newID:      uuid.NewString,
		permission: domain.PermissionUnknown,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.summary = aggregator.Summarize(nil)
	return j
}

// ─── Loading ────────────────────────────────────────────────────────────────

// Load replaces the cache with the store contents. On failure the cache is
// left as it was. The fetch runs under mu so no mutation can land between
// reading the store and swapping the cache.
func (j *Journal) Load(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	records, err := j.store.FetchAll(ctx)
	if err != nil {
		observability.ObservePersistenceFailure("fetch")
		j.log.Error(ctx, "load journal failed", "error", err)
		return fmt.Errorf("%w: load records: %w", domain.ErrPersistence, err)
	}

	j.records = append(j.records[:0:0], records...)
	j.last = time.Time{}
	for _, r := range j.records {
		if r.CreatedAt.After(j.last) {
			j.last = r.CreatedAt
		}
	}
	j.refresh()
	j.log.Info(ctx, "journal loaded", "records", len(j.records))
	return nil
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// AddRecord classifies note, persists a new record at the coordinate and
// caches it.
func (j *Journal) AddRecord(ctx context.Context, at domain.Coordinate, note string) (domain.Record, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return domain.Record{}, domain.ErrEmptyDescription
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.permission != domain.PermissionGranted {
		return domain.Record{}, fmt.Errorf("%w: state is %s", domain.ErrPermissionDenied, j.permission)
	}
	if err := at.Validate(); err != nil {
		return domain.Record{}, err
	}

	a := j.classifier.Analyze(ctx, note)
	created := j.nextTimestamp()
	r, err := domain.NewRecord(j.newID(), at, a.Category, a.Intensity, note, created)
	if err != nil {
		return domain.Record{}, err
	}

	if err := j.store.Append(ctx, r); err != nil {
		observability.ObservePersistenceFailure("append")
		j.log.Error(ctx, "append record failed", "id", r.ID, "label", r.Label(), "error", err)
		return domain.Record{}, fmt.Errorf("%w: append record %s: %w", domain.ErrPersistence, r.ID, err)
	}

	j.last = created
	j.records = append(j.records, r)
	j.refresh()
	observability.RecordsAdded.WithLabelValues(r.Category.String()).Inc()
	j.log.Info(ctx, "record added", "id", r.ID, "label", r.Label(), "scored", a.Scored)
	return r, nil
}

// DeleteRecord removes the cached record with id from the store and cache.
func (j *Journal) DeleteRecord(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	idx := j.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	r := j.records[idx]

	if err := j.store.DeleteMatching(ctx, r.ID, r.Coordinate); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			j.log.Warn(ctx, "record missing from store", "id", r.ID)
			return err
		}
		observability.ObservePersistenceFailure("delete")
		j.log.Error(ctx, "delete record failed", "id", r.ID, "error", err)
		return fmt.Errorf("%w: delete record %s: %w", domain.ErrPersistence, r.ID, err)
	}

	j.records = append(j.records[:idx], j.records[idx+1:]...)
	j.refresh()
	observability.RecordsDeleted.Inc()
	j.log.Info(ctx, "record deleted", "id", r.ID, "label", r.Label())
	return nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// Records returns a copy of the cache in insertion order.
func (j *Journal) Records() []domain.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.Record(nil), j.records...)
}

// Summary returns the summary as of the last successful mutation. Counts and
// Recent are copies; callers may modify them freely.
func (j *Journal) Summary() aggregator.Summary {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := j.summary
	s.Counts = maps.Clone(j.summary.Counts)
	s.Recent = slices.Clone(j.summary.Recent)
	return s
}

// Analyze classifies text without recording it.
func (j *Journal) Analyze(ctx context.Context, text string) classifier.Analysis {
	return j.classifier.Analyze(ctx, text)
}

// ─── Location Permission ────────────────────────────────────────────────────

// Permission returns the current location permission state.
func (j *Journal) Permission() domain.PermissionState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.permission
}

// SetPermission performs one legal transition.
func (j *Journal) SetPermission(ctx context.Context, next domain.PermissionState) (domain.PermissionState, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	s, err := j.permission.Transition(next)
	if err != nil {
		return j.permission, err
	}
	j.log.Info(ctx, "location permission changed", "from", j.permission, "to", s)
	j.permission = s
	return s, nil
}

// InitPermission walks legal transitions from the current state to target.
func (j *Journal) InitPermission(ctx context.Context, target domain.PermissionState) error {
	j.mu.Lock()
	path, err := j.permission.PathTo(target)
	j.mu.Unlock()
	if err != nil {
		return err
	}
	for _, s := range path {
		if _, err := j.SetPermission(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// ─── Internals (caller holds mu) ────────────────────────────────────────────

func (j *Journal) refresh() {
	j.summary = aggregator.Summarize(j.records)
	observability.CachedRecords.Set(float64(len(j.records)))
}

func (j *Journal) indexOf(id string) int {
	for i, r := range j.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// nextTimestamp returns a UTC time strictly after every record so far.
func (j *Journal) nextTimestamp() time.Time {
	t := j.now().UTC()
	if !t.After(j.last) {
		t = j.last.Add(time.Nanosecond)
	}
	return t
}
