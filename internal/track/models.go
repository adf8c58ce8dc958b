package track

import (
	"encoding/json"
	"time"
)

// Category is a named, colored tag for classifying activities.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Thought is a timestamped note pinned during an active session.
// Immutable once created.
type Thought struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// Activity is a single tracked session. EndTime is nil while the
// activity is running. Times are epoch millis so persisted state stays
// compatible with the documented storage format.
type Activity struct {
	ID          string    `json:"id"`
	CategoryIDs []string  `json:"categoryIds"`
	StartTime   int64     `json:"startTime"`
	EndTime     *int64    `json:"endTime"`
	Thoughts    []Thought `json:"thoughts"`
	Mood        string    `json:"mood,omitempty"`
}

// UnmarshalJSON upgrades activities persisted under the older
// single-category shape (categoryId) to categoryIds. Already-migrated
// payloads pass through unchanged, so the migration is idempotent.
func (a *Activity) UnmarshalJSON(data []byte) error {
	type activityAlias Activity
	aux := struct {
		*activityAlias
		LegacyCategoryID string `json:"categoryId"`
	}{activityAlias: (*activityAlias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.CategoryIDs == nil {
		if aux.LegacyCategoryID != "" {
			a.CategoryIDs = []string{aux.LegacyCategoryID}
		} else {
			a.CategoryIDs = []string{}
		}
	}
	if a.Thoughts == nil {
		a.Thoughts = []Thought{}
	}
	return nil
}

// Running reports whether the activity has no end time yet.
func (a *Activity) Running() bool {
	return a.EndTime == nil
}

// StartAt returns the start time in the local timezone.
func (a *Activity) StartAt() time.Time {
	return time.UnixMilli(a.StartTime)
}

// EndAt returns the end time in the local timezone, or the zero time
// while running.
func (a *Activity) EndAt() time.Time {
	if a.EndTime == nil {
		return time.Time{}
	}
	return time.UnixMilli(*a.EndTime)
}

// Duration is the elapsed time between start and end, taking now as
// the end while running. Always recomputed from the two timestamps.
func (a *Activity) Duration(now time.Time) time.Duration {
	end := now
	if a.EndTime != nil {
		end = time.UnixMilli(*a.EndTime)
	}
	d := end.Sub(a.StartAt())
	if d < 0 {
		return 0
	}
	return d
}

// DefaultColors is the palette offered when creating categories.
var DefaultColors = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#f59e0b", // amber
	"#84cc16", // lime
	"#22c55e", // green
	"#10b981", // emerald
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#6366f1", // indigo
	"#8b5cf6", // violet
	"#d946ef", // fuchsia
	"#f43f5e", // rose
}

// DefaultCategories bootstraps a fresh install.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Deep Work", Color: "#3b82f6"},
		{ID: "2", Name: "Meeting", Color: "#8b5cf6"},
		{ID: "3", Name: "Learning", Color: "#10b981"},
		{ID: "4", Name: "Break", Color: "#64748b"},
	}
}
