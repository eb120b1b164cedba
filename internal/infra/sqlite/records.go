package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/moodmap/moodmap/internal/domain"
)

// ─── Mood Record Operations ─────────────────────────────────────────────────
// DB implements domain.JournalStore.

var _ domain.JournalStore = (*DB)(nil)

// Append inserts a record. Labels are stored in their wire form.
func (db *DB) Append(ctx context.Context, r domain.Record) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO mood_records (id, latitude, longitude, label, intensity, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Coordinate.Latitude, r.Coordinate.Longitude, r.Label(), r.Intensity, r.Note, r.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert record %s: %w", r.ID, err)
	}
	return nil
}

// FetchAll returns every record in insertion order.
func (db *DB) FetchAll(ctx context.Context) ([]domain.Record, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, latitude, longitude, label, intensity, note, created_at
		FROM mood_records ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var (
			r       domain.Record
			label   string
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Coordinate.Latitude, &r.Coordinate.Longitude, &label, &r.Intensity, &r.Note, &created); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		cat, err := domain.ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		r.Category = cat
		r.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMatching removes the record with id at the given coordinate.
// It returns domain.ErrNotFound when no row matched.
func (db *DB) DeleteMatching(ctx context.Context, id string, at domain.Coordinate) error {
	res, err := db.db.ExecContext(ctx, `
		DELETE FROM mood_records WHERE id = ? AND latitude = ? AND longitude = ?
	`, id, at.Latitude, at.Longitude)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s at %s: %w", id, at, domain.ErrNotFound)
	}
	return nil
}

// CountRecords returns the number of stored records.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mood_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
