package util

import (
	"testing"

	"github.com/antzucaro/matchr"
)

// TestLevenshtein checks the two-row implementation against hand-computed
// distances and against the reference implementation in matchr.
func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "scaffold_1", 10},
		{"scaffold_1", "scaffold_1", 0},
		{"scaffold_1", "scaffold_2", 1},
		{"scaffold_12", "scaffold_1", 1},
		{"scafold_3", "scaffold_3", 1},
		{"tig00000001", "tig00000012", 2},
		{"chr1", "scaffold_1", 8},
	}

	for _, test := range tests {
		if got := Levenshtein(test.s1, test.s2); got != test.want {
			t.Errorf("Levenshtein(%q, %q): got %v, want %v", test.s1, test.s2, got, test.want)
		}
		// Distance is symmetric.
		if got := Levenshtein(test.s2, test.s1); got != test.want {
			t.Errorf("Levenshtein(%q, %q): got %v, want %v", test.s2, test.s1, got, test.want)
		}
		if got := matchr.Levenshtein(test.s1, test.s2); got != test.want {
			t.Errorf("discrepancy with matchr for (%q, %q): matchr %v, want %v", test.s1, test.s2, got, test.want)
		}
	}
}

func TestClosest(t *testing.T) {
	names := []string{"scaffold_1", "scaffold_2", "scaffold_10"}
	tests := []struct {
		name    string
		maxDist int
		want    string
		wantOK  bool
	}{
		{"scaffold_1", 2, "scaffold_1", true},
		{"scafold_2", 2, "scaffold_2", true},
		{"Scaffold_10", 2, "scaffold_10", true},
		// Equidistant from scaffold_1 and scaffold_2; earliest wins.
		{"scaffold_3", 2, "scaffold_1", true},
		{"chrM", 2, "", false},
		{"scaffold_3", 0, "", false},
	}

	for _, test := range tests {
		got, ok := Closest(test.name, names, test.maxDist)
		if got != test.want || ok != test.wantOK {
			t.Errorf("Closest(%q, _, %d): got (%q, %v), want (%q, %v)",
				test.name, test.maxDist, got, ok, test.want, test.wantOK)
		}
	}
}
