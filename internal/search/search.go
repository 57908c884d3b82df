// Package search ranks candidate labels against a fuzzy query.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Score weights.
const (
	baseScore      = 10
	runWeight      = 5
	adjacentWeight = 2
	prefixBonus    = 50
	exactBonus     = 100
)

// Result is one matching candidate.
type Result struct {
	// Index is the candidate's position in the input slice.
	Index int
	Score int
}

// Match returns the candidates that contain every query character in order,
// case-insensitively, sorted by descending score. Equal scores keep input
// order. An empty query matches every candidate with score 0.
func Match(query string, candidates []string) []Result {
	if query == "" {
		out := make([]Result, len(candidates))
		for i := range candidates {
			out[i] = Result{Index: i}
		}
		return out
	}

	matches := fuzzy.Find(query, candidates)
	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, Result{Index: m.Index, Score: score(query, m.Str, m.MatchedIndexes)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Indexes returns the matching candidate indexes in rank order.
func Indexes(query string, candidates []string) []int {
	results := Match(query, candidates)
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Index
	}
	return out
}

func score(query, candidate string, matched []int) int {
	s := baseScore

	longest, run, adjacent := 0, 0, 0
	for i, idx := range matched {
		if i > 0 && idx == next(candidate, matched[i-1]) {
			run++
			adjacent++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	s += runWeight*longest + adjacentWeight*adjacent

	q, c := strings.ToLower(query), strings.ToLower(candidate)
	if strings.HasPrefix(c, q) {
		s += prefixBonus
	}
	if c == q {
		s += exactBonus
	}
	return s
}

// next returns the byte offset of the rune following the one at idx.
func next(s string, idx int) int {
	_, size := utf8.DecodeRuneInString(s[idx:])
	return idx + size
}
