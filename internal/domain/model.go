// Package domain contains pure business types with ZERO infrastructure imports.
// Moods, records and the boundaries the journal talks to live here.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// ─── Emotional Categories ───────────────────────────────────────────────────

// Category is one of the seven emotional categories a sentiment score maps to.
// Declared highest score range first; the zero value is CategoryNone.
type Category uint8

const (
	CategoryNone Category = iota // empty sentinel, never a record label
	Euphoric
	Joyful
	Content
	Neutral
	Reflective
	Melancholic
	Distressed
)

// Categories lists every valid category, ordered from highest to lowest score range.
var Categories = [...]Category{Euphoric, Joyful, Content, Neutral, Reflective, Melancholic, Distressed}

var categoryNames = [...]string{
	CategoryNone: "",
	Euphoric:     "Euphoric",
	Joyful:       "Joyful",
	Content:      "Content",
	Neutral:      "Neutral",
	Reflective:   "Reflective",
	Melancholic:  "Melancholic",
	Distressed:   "Distressed",
}

var categoryGlyphs = [...]string{
	CategoryNone: "",
	Euphoric:     "🤩",
	Joyful:       "😊",
	Content:      "🙂",
	Neutral:      "😐",
	Reflective:   "🤔",
	Melancholic:  "😔",
	Distressed:   "😢",
}

// Valid reports whether c is one of the seven record categories.
func (c Category) Valid() bool {
	return c >= Euphoric && c <= Distressed
}

// String returns the bare category name ("Joyful").
func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Glyph returns the emoji paired with the category.
func (c Category) Glyph() string {
	if !c.Valid() {
		return ""
	}
	return categoryGlyphs[c]
}

// Label returns the wire/persisted form: glyph, a space, then the name ("😊 Joyful").
// CategoryNone has an empty label.
func (c Category) Label() string {
	if !c.Valid() {
		return ""
	}
	return categoryGlyphs[c] + " " + categoryNames[c]
}

// ParseLabel maps a persisted label back to its category. The bare name is
// accepted too. Anything else is ErrUnknownLabel: the set never grows.
func ParseLabel(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if s == c.Label() || s == categoryNames[c] {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// MarshalJSON encodes the category as its label.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Label())
}

// UnmarshalJSON decodes a label, or "" for CategoryNone.
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*c = CategoryNone
		return nil
	}
	parsed, err := ParseLabel(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ─── Coordinates ────────────────────────────────────────────────────────────

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects NaN, infinities and out-of-range degrees.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// String formats the coordinate with six decimals (~0.1 m).
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// ─── Mood Records ───────────────────────────────────────────────────────────

// Record is one journal entry: how the user felt at a point on the map.
// Records are immutable once built; the journal only creates and deletes them.
type Record struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Category   Category   `json:"label"`
	Intensity  float64    `json:"intensity"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewRecord validates its inputs and builds a Record. CreatedAt is stored in UTC.
func NewRecord(id string, at Coordinate, category Category, intensity float64, note string, createdAt time.Time) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, fmt.Errorf("record id must not be empty")
	}
	if err := at.Validate(); err != nil {
		return Record{}, err
	}
	if !category.Valid() {
		return Record{}, fmt.Errorf("%w: category %d", ErrUnknownLabel, uint8(category))
	}
	if strings.TrimSpace(note) == "" {
		return Record{}, ErrEmptyDescription
	}
	return Record{
		ID:         id,
		Coordinate: at,
		Category:   category,
		Intensity:  intensity,
		Note:       note,
		CreatedAt:  createdAt.UTC(),
	}, nil
}

// Label returns the persisted label string of the record's category.
func (r Record) Label() string { return r.Category.Label() }

// Matches reports whether r is the entity identified by id at the given point.
func (r Record) Matches(id string, at Coordinate) bool {
	return r.ID == id && r.Coordinate == at
}
