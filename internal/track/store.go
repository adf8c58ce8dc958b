package track

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/chronoflow/internal/storage"
)

// Store is the single source of truth for categories and activities.
// It holds the completed list plus at most one active activity, and
// writes every mutation through the injected storage port.
type Store struct {
	storage storage.Storage
	now     func() time.Time
	newID   func() string

	categories []Category
	activities []Activity // completed only, most recent first
	active     *Activity
}

func NewStore(st storage.Storage) *Store {
	return &Store{
		storage: st,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load reads persisted state. Absent keys fall back to defaults; the
// legacy categoryId shape is upgraded during decode.
func (s *Store) Load() error {
	raw, ok, err := s.storage.Get(storage.KeyCategories)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.categories); err != nil {
			return fmt.Errorf("parse categories: %w", err)
		}
	} else {
		s.categories = DefaultCategories()
	}

	raw, ok, err = s.storage.Get(storage.KeyActivities)
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}
	s.activities = nil
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.activities); err != nil {
			return fmt.Errorf("parse activities: %w", err)
		}
	}

	raw, ok, err = s.storage.Get(storage.KeyActiveActivity)
	if err != nil {
		return fmt.Errorf("load active activity: %w", err)
	}
	s.active = nil
	if ok {
		var a Activity
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return fmt.Errorf("parse active activity: %w", err)
		}
		s.active = &a
	}
	return nil
}

// Categories returns the registry in definition order.
func (s *Store) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Activities returns the completed activities, most recent first.
func (s *Store) Activities() []Activity {
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Active returns a copy of the running activity, or nil.
func (s *Store) Active() *Activity {
	if s.active == nil {
		return nil
	}
	a := *s.active
	return &a
}

// Start begins a new activity. It is a no-op (nil, nil) if one is
// already active or categoryIDs is empty.
func (s *Store) Start(categoryIDs []string, mood string) (*Activity, error) {
	if s.active != nil || len(categoryIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(categoryIDs))
	seen := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	a := Activity{
		ID:          s.newID(),
		CategoryIDs: ids,
		StartTime:   s.now().UnixMilli(),
		Thoughts:    []Thought{},
		Mood:        mood,
	}
	s.active = &a
	if err := s.persistActive(); err != nil {
		return nil, err
	}
	out := a
	return &out, nil
}

// Stop finalizes the active activity and prepends it to the completed
// list. No-op (nil, nil) when nothing is active.
func (s *Store) Stop() (*Activity, error) {
	if s.active == nil {
		return nil, nil
	}

	end := s.now().UnixMilli()
	if end < s.active.StartTime {
		end = s.active.StartTime
	}
	s.active.EndTime = &end

	finished := *s.active
	s.activities = append([]Activity{finished}, s.activities...)
	s.active = nil

	if err := s.persistActivities(); err != nil {
		return nil, err
	}
	if err := s.persistActive(); err != nil {
		return nil, err
	}
	out := finished
	return &out, nil
}

// AddThought pins a thought to the active activity. No-op (nil, nil)
// when nothing is active or the text trims to empty.
func (s *Store) AddThought(text string) (*Thought, error) {
	text = strings.TrimSpace(text)
	if s.active == nil || text == "" {
		return nil, nil
	}

	th := Thought{
		ID:        s.newID(),
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	s.active.Thoughts = append(s.active.Thoughts, th)
	if err := s.persistActive(); err != nil {
		return nil, err
	}
	out := th
	return &out, nil
}

// AddCategory appends a category to the registry.
func (s *Store) AddCategory(name, color string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is empty")
	}
	c := Category{ID: s.newID(), Name: name, Color: color}
	s.categories = append(s.categories, c)
	if err := s.persistCategories(); err != nil {
		return nil, err
	}
	out := c
	return &out, nil
}

// UpdateCategory renames or recolors an existing category.
func (s *Store) UpdateCategory(id, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is empty")
	}
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			s.categories[i].Color = color
			return s.persistCategories()
		}
	}
	return fmt.Errorf("category %q not found", id)
}

// DeleteCategory removes a category from the registry. Historical
// activities keep the dangling id and resolve to Unknown at render
// time.
func (s *Store) DeleteCategory(id string) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return s.persistCategories()
		}
	}
	return fmt.Errorf("category %q not found", id)
}

// ReplaceCategories swaps the whole registry (backup import).
func (s *Store) ReplaceCategories(categories []Category) error {
	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
	return s.persistCategories()
}

// ReplaceActivities swaps the whole completed list (backup import).
func (s *Store) ReplaceActivities(activities []Activity) error {
	s.activities = make([]Activity, len(activities))
	copy(s.activities, activities)
	return s.persistActivities()
}

func (s *Store) persistCategories() error {
	return s.persistJSON(storage.KeyCategories, s.categories)
}

func (s *Store) persistActivities() error {
	list := s.activities
	if list == nil {
		list = []Activity{}
	}
	return s.persistJSON(storage.KeyActivities, list)
}

func (s *Store) persistActive() error {
	if s.active == nil {
		if err := s.storage.Delete(storage.KeyActiveActivity); err != nil {
			return fmt.Errorf("clear active activity: %w", err)
		}
		return nil
	}
	return s.persistJSON(storage.KeyActiveActivity, s.active)
}

func (s *Store) persistJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.storage.Set(key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
