package core

import (
	"testing"
)

// ============================================================================
// ParseLimit Tests
// ============================================================================

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"3", 3},
		{" 12", 12},
		{"+4", 4},
		{"7 rows", 7},
		{"3.9", 3},
		{"abc", 0},
		{"-2", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		if got := ParseLimit(tt.in); got != tt.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Artwork list helper Tests
// ============================================================================

func TestIndexByID(t *testing.T) {
	list := []Artwork{{ID: 4}, {ID: 9}, {ID: 2}}

	tests := []struct {
		id   int
		want int
	}{
		{4, 0},
		{2, 2},
		{7, -1},
	}
	for _, tt := range tests {
		if got := indexByID(list, tt.id); got != tt.want {
			t.Errorf("indexByID(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}

	if got := indexByID(nil, 1); got != -1 {
		t.Errorf("indexByID(nil) = %d, want -1", got)
	}
}

func TestDedupeByID_KeepsFirstOccurrence(t *testing.T) {
	list := []Artwork{{ID: 1, Title: "first"}, {ID: 2}, {ID: 1, Title: "second"}, {ID: 3}, {ID: 2}}

	got := dedupeByID(list)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
	if got[0].Title != "first" {
		t.Errorf("kept %q, want first occurrence", got[0].Title)
	}
}

func TestWithoutIDs(t *testing.T) {
	list := []Artwork{{ID: 1}, {ID: 2}, {ID: 3}}

	got := withoutIDs(list, map[int]bool{2: true, 8: true})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("withoutIDs = %+v, want [1 3]", got)
	}

	// The input is not modified.
	if len(list) != 3 || list[1].ID != 2 {
		t.Errorf("input modified: %+v", list)
	}

	if got := withoutIDs(list, nil); len(got) != 3 {
		t.Errorf("nil drop set removed rows: %+v", got)
	}
}
