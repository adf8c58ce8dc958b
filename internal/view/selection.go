// Package view holds the transient UI selection state: which
// categories are picked before starting an activity and which calendar
// dates are compared in the timeline. None of it is persisted beyond
// the two settings flags its owners reconstruct it from.
package view

import "sort"

// CategorySelection is the pre-start category picker state machine.
type CategorySelection struct {
	multiSelect bool
	ids         []string // insertion order
}

func NewCategorySelection(multiSelect bool) *CategorySelection {
	return &CategorySelection{multiSelect: multiSelect}
}

func (s *CategorySelection) MultiSelect() bool { return s.multiSelect }

// SetMultiSelect switches the mode. The existing selection is neither
// cleared nor merged; only future toggles change behavior.
func (s *CategorySelection) SetMultiSelect(enabled bool) {
	s.multiSelect = enabled
}

// Toggle applies a click on a category chip. Single-select mode always
// replaces the selection; multi-select mode adds or removes the id and
// may leave the selection empty.
func (s *CategorySelection) Toggle(id string) {
	if !s.multiSelect {
		s.ids = []string{id}
		return
	}
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

func (s *CategorySelection) Selected(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *CategorySelection) Empty() bool { return len(s.ids) == 0 }

func (s *CategorySelection) Clear() { s.ids = nil }

// IDs returns the selection in insertion order.
func (s *CategorySelection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// DateSelection is the timeline comparison set: the calendar dates
// (YYYY-MM-DD) rendered side by side, kept sorted ascending.
type DateSelection struct {
	includeToday bool
	dates        []string
}

// NewDateSelection starts with today selected.
func NewDateSelection(includeToday bool, today string) *DateSelection {
	return &DateSelection{
		includeToday: includeToday,
		dates:        []string{today},
	}
}

func (s *DateSelection) IncludeToday() bool { return s.includeToday }

func (s *DateSelection) SetIncludeToday(enabled bool) {
	s.includeToday = enabled
}

// Toggle applies a click on a date. A selected date is removed (the
// set may go empty). Adding depends on the include-today flag: when
// set, today is force-added alongside any past date as the comparison
// baseline; when unset, picking a different date while only today is
// selected replaces today instead of comparing against it.
func (s *DateSelection) Toggle(date, today string) {
	if s.remove(date) {
		return
	}

	if s.includeToday {
		if date != today && !s.contains(today) {
			s.dates = append(s.dates, today)
		}
		s.dates = append(s.dates, date)
	} else {
		if date != today && len(s.dates) == 1 && s.dates[0] == today {
			s.dates = s.dates[:0]
		}
		s.dates = append(s.dates, date)
	}
	sort.Strings(s.dates)
}

func (s *DateSelection) remove(date string) bool {
	for i, d := range s.dates {
		if d == date {
			s.dates = append(s.dates[:i], s.dates[i+1:]...)
			return true
		}
	}
	return false
}

func (s *DateSelection) contains(date string) bool {
	for _, d := range s.dates {
		if d == date {
			return true
		}
	}
	return false
}

func (s *DateSelection) Selected(date string) bool { return s.contains(date) }

// Dates returns the raw selection, ascending.
func (s *DateSelection) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// DatesToRender is the selection the timeline actually draws: the
// selected dates, or today when the selection is empty.
func (s *DateSelection) DatesToRender(today string) []string {
	if len(s.dates) == 0 {
		return []string{today}
	}
	return s.Dates()
}
