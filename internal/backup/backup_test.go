package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/chronoflow/internal/storage"
	"github.com/sadopc/chronoflow/internal/track"
)

func newTestStore(t *testing.T) *track.Store {
	t.Helper()
	s := track.NewStore(storage.NewMemory())
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	src.Start([]string{"1", "2"}, "")
	src.AddThought("round trip me")
	src.Stop()
	src.Start([]string{"3"}, "")
	src.Stop()

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := Export(src.Categories(), src.Activities(), path); err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	dst.DeleteCategory("1") // diverge before import
	res, err := ImportFile(path, dst)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CategoriesReplaced || !res.ActivitiesReplaced {
		t.Fatalf("both fields should import: %+v", res)
	}

	wantCats := src.Categories()
	gotCats := dst.Categories()
	if len(gotCats) != len(wantCats) {
		t.Fatalf("category count mismatch: %d vs %d", len(gotCats), len(wantCats))
	}
	for i := range wantCats {
		if gotCats[i] != wantCats[i] {
			t.Fatalf("category %d mismatch: %+v vs %+v", i, gotCats[i], wantCats[i])
		}
	}

	wantActs := src.Activities()
	gotActs := dst.Activities()
	if len(gotActs) != len(wantActs) {
		t.Fatalf("activity count mismatch: %d vs %d", len(gotActs), len(wantActs))
	}
	for i := range wantActs {
		if gotActs[i].ID != wantActs[i].ID {
			t.Fatalf("activity %d mismatch", i)
		}
		if len(gotActs[i].Thoughts) != len(wantActs[i].Thoughts) {
			t.Fatal("thoughts should round-trip")
		}
	}
}

func TestImportMalformedLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	s.Start([]string{"1"}, "")
	s.Stop()
	before := s.Activities()

	_, err := Import([]byte(`{definitely not json`), s)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(s.Activities()) != len(before) || len(s.Categories()) != 4 {
		t.Fatal("malformed import must not mutate state")
	}
}

func TestImportFieldsIndependently(t *testing.T) {
	s := newTestStore(t)

	// Valid activities, categories of the wrong shape: activities still
	// import, categories are left alone.
	doc := []byte(`{
		"categories": "oops",
		"activities": [{"id":"a1","categoryIds":["1"],"startTime":1000,"endTime":5000,"thoughts":[]}],
		"version": "1.0"
	}`)
	res, err := Import(doc, s)
	if err != nil {
		t.Fatal(err)
	}
	if res.CategoriesReplaced {
		t.Fatal("non-array categories must not import")
	}
	if !res.ActivitiesReplaced || len(s.Activities()) != 1 {
		t.Fatal("activities should import independently")
	}
	if len(s.Categories()) != 4 {
		t.Fatal("categories should be untouched")
	}
}

func TestImportLegacyActivityShape(t *testing.T) {
	s := newTestStore(t)
	doc := []byte(`{"activities": [{"id":"a1","categoryId":"1","startTime":1000,"endTime":5000}]}`)
	if _, err := Import(doc, s); err != nil {
		t.Fatal(err)
	}
	acts := s.Activities()
	if len(acts[0].CategoryIDs) != 1 || acts[0].CategoryIDs[0] != "1" {
		t.Fatalf("legacy shape should migrate on import, got %+v", acts[0].CategoryIDs)
	}
}

func TestImportNothingImportable(t *testing.T) {
	s := newTestStore(t)
	if _, err := Import([]byte(`{"version":"1.0"}`), s); err == nil {
		t.Fatal("expected error when neither array is present")
	}
}

func TestResultSummary(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{CategoriesReplaced: true, ActivitiesReplaced: true}, "Imported categories and activities"},
		{Result{CategoriesReplaced: true}, "Imported categories"},
		{Result{ActivitiesReplaced: true}, "Imported activities"},
		{Result{}, "Nothing imported"},
	}
	for _, tt := range tests {
		got := tt.res.Summary()
		if got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.res, got, tt.want)
		}
		if strings.Contains(got, "%!") {
			t.Errorf("Summary(%+v) contains a bad format verb: %q", tt.res, got)
		}
	}
}

func TestExportWritesVersionedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := Export(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"version": "1.0"`, `"exportDate"`, `"categories": []`, `"activities": []`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("export missing %s:\n%s", want, data)
		}
	}
}
