package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch_EmptyQueryKeepsAll(t *testing.T) {
	candidates := []string{"build", "test", "lint"}

	got := Match("", candidates)
	want := []Result{{Index: 0}, {Index: 1}, {Index: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_ExcludesNonSubsequence(t *testing.T) {
	candidates := []string{"build", "test", "dlib"}

	got := Indexes("bld", candidates)
	if diff := cmp.Diff([]int{0}, got); diff != "" {
		t.Errorf("Indexes() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	got := Indexes("BUILD", []string{"build:prod"})
	if len(got) != 1 {
		t.Errorf("Indexes() = %v, want one match", got)
	}
}

func TestMatch_RankOrder(t *testing.T) {
	candidates := []string{"b-u-i-l-d-x", "build:prod", "build"}

	results := Match("build", candidates)
	if len(results) != 3 {
		t.Fatalf("Match() returned %d results, want 3", len(results))
	}
	order := []int{results[0].Index, results[1].Index, results[2].Index}
	if diff := cmp.Diff([]int{2, 1, 0}, order); diff != "" {
		t.Errorf("rank order mismatch (-want +got):\n%s", diff)
	}
	if !(results[0].Score > results[1].Score && results[1].Score > results[2].Score) {
		t.Errorf("scores not strictly descending: %+v", results)
	}
}

func TestMatch_TiesKeepInputOrder(t *testing.T) {
	candidates := []string{"xa-b", "ya-b", "za-b"}

	got := Indexes("ab", candidates)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("Indexes() mismatch (-want +got):\n%s", diff)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		matched   []int
		want      int
	}{
		{"scattered", "bd", "build", []int{0, 4}, 10 + 5},
		{"run", "ui", "build", []int{1, 2}, 10 + 5*2 + 2},
		{"prefix", "bu", "build", []int{0, 1}, 10 + 5*2 + 2 + 50},
		{"exact", "test", "Test", []int{0, 1, 2, 3}, 10 + 5*4 + 2*3 + 50 + 100},
		{"multibyte", "éa", "éa", []int{0, 2}, 10 + 5*2 + 2 + 50 + 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.query, tt.candidate, tt.matched); got != tt.want {
				t.Errorf("score() = %d, want %d", got, tt.want)
			}
		})
	}
}
