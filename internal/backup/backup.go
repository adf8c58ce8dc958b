// Package backup reads and writes the versioned JSON backup file.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/chronoflow/internal/track"
)

// Version is the backup format version written on export.
const Version = "1.0"

// File is the on-disk backup document.
type File struct {
	Categories []track.Category `json:"categories"`
	Activities []track.Activity `json:"activities"`
	ExportDate string           `json:"exportDate"`
	Version    string           `json:"version"`
}

// DefaultFilename is the suggested export name for a given day.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("chronoflow_backup_%s.json", now.Format("2006-01-02"))
}

// Export writes categories and completed activities to path.
func Export(categories []track.Category, activities []track.Activity, path string) error {
	if categories == nil {
		categories = []track.Category{}
	}
	if activities == nil {
		activities = []track.Activity{}
	}
	f := File{
		Categories: categories,
		Activities: activities,
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    Version,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// Result reports which parts of the store an import replaced.
type Result struct {
	CategoriesReplaced bool
	ActivitiesReplaced bool
}

// Summary renders the result for user display.
func (r Result) Summary() string {
	switch {
	case r.CategoriesReplaced && r.ActivitiesReplaced:
		return "Imported categories and activities"
	case r.CategoriesReplaced:
		return "Imported categories"
	case r.ActivitiesReplaced:
		return "Imported activities"
	}
	return "Nothing imported"
}

// Import parses a backup document and replaces the store's categories
// and activities independently: each field is applied only when it is
// a well-formed array. A document that fails to parse, or that carries
// neither array, returns an error with the store untouched — an import
// never partially commits.
func Import(data []byte, store *track.Store) (Result, error) {
	var raw struct {
		Categories json.RawMessage `json:"categories"`
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("parse backup file: %w", err)
	}

	// Decode both fields before touching the store.
	var categories []track.Category
	haveCategories := raw.Categories != nil && json.Unmarshal(raw.Categories, &categories) == nil && categories != nil

	var activities []track.Activity
	haveActivities := raw.Activities != nil && json.Unmarshal(raw.Activities, &activities) == nil && activities != nil

	if !haveCategories && !haveActivities {
		return Result{}, fmt.Errorf("backup file contains no importable data")
	}

	var res Result
	if haveCategories {
		if err := store.ReplaceCategories(categories); err != nil {
			return res, fmt.Errorf("import categories: %w", err)
		}
		res.CategoriesReplaced = true
	}
	if haveActivities {
		if err := store.ReplaceActivities(activities); err != nil {
			return res, fmt.Errorf("import activities: %w", err)
		}
		res.ActivitiesReplaced = true
	}
	return res, nil
}

// ImportFile is Import over a file path.
func ImportFile(path string, store *track.Store) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read backup file: %w", err)
	}
	return Import(data, store)
}
