package schedule

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwhite/hw/internal/store"
)

// prefsKey is the fixed kv-store key the serialized preferences live under.
const prefsKey = "preferences"

// SchoolHours is the daily window during which homework cannot start.
type SchoolHours struct {
	Start string `json:"start"` // HH:MM, 24h
	End   string `json:"end"`
}

// Activity is a recurring weekly commitment that blocks homework time.
type Activity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"` // HH:MM, 24h
	End   string `json:"end"`
	Days  []int  `json:"days"` // weekdays, 0=Sunday..6=Saturday
}

// Preferences holds everything the placement heuristic needs.
type Preferences struct {
	SchoolHours SchoolHours `json:"schoolHours"`
	Activities  []Activity  `json:"activities"`
}

// DefaultPreferences returns the out-of-the-box preferences:
// school from 08:00 to 15:00, no activities.
func DefaultPreferences() Preferences {
	return Preferences{
		SchoolHours: SchoolHours{Start: "08:00", End: "15:00"},
	}
}

// NewActivity builds an activity with a fresh unique ID.
func NewActivity(name, start, end string, days []int) (Activity, error) {
	if !ValidClock(start) || !ValidClock(end) {
		return Activity{}, fmt.Errorf("invalid activity time %q–%q — use HH:MM (24h)", start, end)
	}
	if start >= end {
		return Activity{}, fmt.Errorf("activity start %s must be before end %s", start, end)
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return Activity{}, fmt.Errorf("invalid weekday %d — use 0 (Sunday) through 6 (Saturday)", d)
		}
	}
	return Activity{
		ID:    uuid.NewString(),
		Name:  name,
		Start: start,
		End:   end,
		Days:  days,
	}, nil
}

// ValidClock reports whether s is a zero-padded HH:MM wall-clock time.
// Zero-padded values compare correctly as strings, which the placement
// heuristic relies on.
func ValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Store persists preferences as a JSON blob in the kv table.
type Store struct {
	db *sql.DB
}

// NewStore creates a preferences store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads preferences, returning defaults when none are saved yet.
func (s *Store) Load() (Preferences, error) {
	raw, ok, err := store.Get(s.db, prefsKey)
	if err != nil {
		return Preferences{}, fmt.Errorf("loading preferences: %w", err)
	}
	if !ok || raw == "" {
		return DefaultPreferences(), nil
	}

	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Preferences{}, fmt.Errorf("decoding preferences: %w", err)
	}
	return p, nil
}

// Save writes preferences back to the kv table.
func (s *Store) Save(p Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := store.Set(s.db, prefsKey, string(raw)); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// RemoveActivity deletes an activity by ID or name prefix, returning the
// removed activity. Ambiguous or unknown references are an error.
func (p *Preferences) RemoveActivity(ref string) (Activity, error) {
	idx := -1
	for i, a := range p.Activities {
		if a.ID == ref || a.Name == ref {
			if idx >= 0 {
				return Activity{}, fmt.Errorf("activity %q is ambiguous — use its ID", ref)
			}
			idx = i
		}
	}
	if idx < 0 {
		return Activity{}, fmt.Errorf("activity %q not found", ref)
	}
	removed := p.Activities[idx]
	p.Activities = append(p.Activities[:idx], p.Activities[idx+1:]...)
	return removed, nil
}
