package match

import (
	"slices"

	"model-lowering/internal/common"
)

// SuggestThreshold is the similarity below which a name is not worth
// suggesting.
const SuggestThreshold = 0.6

// Candidate is a known name scored against a wanted one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by descending score.
type CandidateList []Candidate

// Rank scores every known name against wanted. Ties are broken by name so
// the order is deterministic.
func Rank(wanted string, known []string) CandidateList {
	out := make(CandidateList, 0, len(known))
	for _, name := range known {
		out = append(out, Candidate{Name: name, Score: Similarity(wanted, name)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}

		return common.CompareFold(a.Name, b.Name)
	})

	return out
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}

// IsAmbiguous reports whether the top two candidates score within gap of
// each other.
func (c CandidateList) IsAmbiguous(gap float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < gap
}

// Suggest returns the closest known name to wanted, if one is close enough.
func Suggest(wanted string, known []string) (string, bool) {
	best := Rank(wanted, known).AboveThreshold(SuggestThreshold).Best()
	if best == nil {
		return "", false
	}

	return best.Name, true
}
