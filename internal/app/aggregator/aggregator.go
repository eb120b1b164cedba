// Package aggregator derives summary statistics from a set of mood records.
//
// Summarize is pure: it reads the input slice, never mutates it and keeps no
// state between calls, so it is recomputed from scratch after every journal
// mutation.
package aggregator

import (
	"sort"

	"github.com/moodmap/moodmap/internal/domain"
)

// RecentLimit is the maximum length of Summary.Recent.
const RecentLimit = 5

// Summary is the derived view over a record set.
type Summary struct {
	// Counts maps each present category to its record count.
	// Categories with no records are absent; read a missing key as 0.
	Counts map[domain.Category]int

	// MostFrequent is the category with the highest count. Ties go to the
	// category whose first record appears earliest in the input.
	// CategoryNone when there are no records.
	MostFrequent domain.Category

	// Recent holds up to RecentLimit records, newest first.
	Recent []domain.Record

	// Total is the number of records summarized.
	Total int
}

// Share is one row of Breakdown.
type Share struct {
	Category domain.Category `json:"label"`
	Count    int             `json:"count"`
	Percent  float64         `json:"percent"`
}

// Summarize computes counts, the most frequent category and the recent list.
// records is expected in insertion order.
func Summarize(records []domain.Record) Summary {
	s := Summary{
		Counts: make(map[domain.Category]int),
		Total:  len(records),
	}

	// first occurrence order drives the tie-break
	var order []domain.Category
	for _, r := range records {
		if _, seen := s.Counts[r.Category]; !seen {
			order = append(order, r.Category)
		}
		s.Counts[r.Category]++
	}

	best := 0
	for _, c := range order {
		if n := s.Counts[c]; n > best {
			best = n
			s.MostFrequent = c
		}
	}

	s.Recent = Recent(records, RecentLimit)
	return s
}

// Recent returns up to limit records sorted by CreatedAt, newest first.
// Records with equal timestamps keep their input order.
func Recent(records []domain.Record, limit int) []domain.Record {
	sorted := append([]domain.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Count returns the number of records with category c.
func (s Summary) Count(c domain.Category) int {
	return s.Counts[c]
}

// HasEnoughData reports whether at least two distinct categories are present.
// Below that, detailed statistics are not worth charting.
func (s Summary) HasEnoughData() bool {
	return len(s.Counts) >= 2
}

// Breakdown lists present categories in category order with their share of
// the total, as a percentage.
func (s Summary) Breakdown() []Share {
	var out []Share
	for _, c := range domain.Categories {
		n, ok := s.Counts[c]
		if !ok {
			continue
		}
		pct := 0.0
		if s.Total > 0 {
			pct = float64(n) / float64(s.Total) * 100
		}
		out = append(out, Share{Category: c, Count: n, Percent: pct})
	}
	return out
}
