package view

import (
	"reflect"
	"testing"
)

// ============================================================
// Category selection
// ============================================================

func TestSingleSelectReplaces(t *testing.T) {
	s := NewCategorySelection(false)

	s.Toggle("a")
	s.Toggle("b")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("single-select should replace, got %v", got)
	}

	// Clicking the selected chip keeps it selected.
	s.Toggle("b")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("re-click should keep the selection, got %v", got)
	}
}

func TestMultiSelectToggles(t *testing.T) {
	s := NewCategorySelection(true)

	s.Toggle("a")
	s.Toggle("b")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected insertion order, got %v", got)
	}

	s.Toggle("a")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("toggle should remove a selected id, got %v", got)
	}

	s.Toggle("b")
	if !s.Empty() {
		t.Fatal("multi-select may go empty")
	}
}

func TestModeSwitchKeepsSelection(t *testing.T) {
	s := NewCategorySelection(true)
	s.Toggle("a")
	s.Toggle("b")

	s.SetMultiSelect(false)
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("mode switch must not clear the selection, got %v", got)
	}

	// But the next click behaves per the new mode.
	s.Toggle("c")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("click after switch should replace, got %v", got)
	}
}

// ============================================================
// Date comparison selection
// ============================================================

const today = "2024-03-07"

func TestDateToggleWithIncludeToday(t *testing.T) {
	s := NewDateSelection(true, today)

	s.Toggle("2024-01-01", today)
	want := []string{"2024-01-01", today}
	if got := s.Dates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v sorted ascending, got %v", want, got)
	}
}

func TestDateToggleForceAddsTodayWhenAbsent(t *testing.T) {
	s := NewDateSelection(true, today)
	s.Toggle(today, today) // deselect today: selection is empty

	s.Toggle("2024-01-01", today)
	want := []string{"2024-01-01", today}
	if got := s.Dates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("today should be force-added as baseline, got %v", got)
	}
}

func TestDateToggleReplaceWithoutIncludeToday(t *testing.T) {
	s := NewDateSelection(false, today)

	s.Toggle("2024-01-01", today)
	if got := s.Dates(); !reflect.DeepEqual(got, []string{"2024-01-01"}) {
		t.Fatalf("today should be replaced, got %v", got)
	}

	// With >=2 dates (or today absent), further picks simply add.
	s.Toggle("2024-01-05", today)
	want := []string{"2024-01-01", "2024-01-05"}
	if got := s.Dates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDateToggleRemoveMayGoEmpty(t *testing.T) {
	s := NewDateSelection(true, today)
	s.Toggle(today, today)
	if len(s.Dates()) != 0 {
		t.Fatal("removing the last date should leave an empty selection")
	}

	// Empty selection renders as today.
	if got := s.DatesToRender(today); !reflect.DeepEqual(got, []string{today}) {
		t.Fatalf("empty selection should fall back to today, got %v", got)
	}
}

func TestDateToggleTodayItselfWithoutIncludeToday(t *testing.T) {
	// Picking today when only today is selected removes it; picking it
	// again re-adds it without any replacement shuffle.
	s := NewDateSelection(false, today)
	s.Toggle(today, today)
	s.Toggle(today, today)
	if got := s.Dates(); !reflect.DeepEqual(got, []string{today}) {
		t.Fatalf("expected {today}, got %v", got)
	}
}

func TestDatesToRenderNonEmpty(t *testing.T) {
	s := NewDateSelection(true, today)
	s.Toggle("2024-01-01", today)
	if got := s.DatesToRender(today); !reflect.DeepEqual(got, s.Dates()) {
		t.Fatalf("non-empty selection renders as-is, got %v", got)
	}
}
