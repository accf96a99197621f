package listing

import (
	"reflect"
	"testing"
)

type rec struct {
	ID   string
	Name string
	Note string
}

var recSpec = Spec[rec]{
	SearchText: func(r rec) []string { return []string{r.Name, r.Note} },
	Less: map[string]func(a, b rec) bool{
		"name": func(a, b rec) bool { return a.Name < b.Name },
		"note": func(a, b rec) bool { return a.Note < b.Note },
	},
	DefaultKey: "name",
	TieBreak:   func(a, b rec) bool { return a.ID < b.ID },
}

func names(rs []rec) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestResolveFilterIsCaseSensitiveSubstring(t *testing.T) {
	items := []rec{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "alina"},
		{ID: "3", Name: "Bob", Note: "Ali"},
	}
	page, total := Resolve(items, recSpec, Params{Filter: "Ali", Take: 10})
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	got := names(page)
	want := []string{"Alice", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("page = %v, want %v", got, want)
	}
}

func TestResolveFilterTrimsWhitespaceOnly(t *testing.T) {
	items := []rec{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	_, total := Resolve(items, recSpec, Params{Filter: "   ", Take: 10})
	if total != 2 {
		t.Fatalf("whitespace filter should match everything, total = %d", total)
	}
}

func TestResolveUnknownSortKeyFallsBack(t *testing.T) {
	items := []rec{{ID: "1", Name: "C"}, {ID: "2", Name: "A"}, {ID: "3", Name: "B"}}
	page, _ := Resolve(items, recSpec, Params{Sort: "no-such-key", Take: 10})
	want := []string{"A", "B", "C"}
	if got := names(page); !reflect.DeepEqual(got, want) {
		t.Fatalf("page = %v, want %v", got, want)
	}
}

func TestResolveTieBreakByID(t *testing.T) {
	items := []rec{
		{ID: "9", Name: "Same"},
		{ID: "1", Name: "Same"},
		{ID: "5", Name: "Same"},
	}
	page, _ := Resolve(items, recSpec, Params{Take: 10})
	got := make([]string, 0, len(page))
	for _, r := range page {
		got = append(got, r.ID)
	}
	want := []string{"1", "5", "9"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestResolveTotalCountIgnoresPaging(t *testing.T) {
	items := []rec{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}
	page, total := Resolve(items, recSpec, Params{Skip: 1, Take: 1})
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if got := names(page); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("page = %v, want [B]", got)
	}
}

func TestResolvePagesPartitionWithoutOverlap(t *testing.T) {
	items := []rec{
		{ID: "4", Name: "D"}, {ID: "2", Name: "B"}, {ID: "5", Name: "E"},
		{ID: "1", Name: "A"}, {ID: "3", Name: "C"},
	}
	var all []string
	for skip := 0; skip < len(items); skip += 2 {
		page, _ := Resolve(items, recSpec, Params{Skip: skip, Take: 2})
		all = append(all, names(page)...)
	}
	want := []string{"A", "B", "C", "D", "E"}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("concatenated pages = %v, want %v", all, want)
	}
}

func TestResolveSkipPastEnd(t *testing.T) {
	items := []rec{{ID: "1", Name: "A"}}
	page, total := Resolve(items, recSpec, Params{Skip: 10, Take: 10})
	if len(page) != 0 {
		t.Fatalf("page should be empty, got %v", page)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
}

func TestSortKeysResolve(t *testing.T) {
	keys := NewSortKeys("gendername", map[string]string{
		"gendername":   "gender_name",
		"creationtime": "created_at",
	})
	if got := keys.Resolve("CreationTime"); got != "created_at" {
		t.Fatalf("Resolve(CreationTime) = %q", got)
	}
	if got := keys.Resolve("bogus"); got != "gender_name" {
		t.Fatalf("unknown key should fall back to default, got %q", got)
	}
	if got := keys.Resolve(""); got != "gender_name" {
		t.Fatalf("empty key should fall back to default, got %q", got)
	}
}

func TestNewSortKeysPanicsWithoutDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing default key")
		}
	}()
	NewSortKeys("missing", map[string]string{"a": "a"})
}
