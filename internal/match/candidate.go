package match

import "sort"

// Candidate is a field name scored against an unknown input key.
type Candidate struct {
	Name  string
	Score float64 // normalized Levenshtein similarity (0-1)
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Thresholds for accepting a suggestion.
const (
	// DefaultMinScore is the minimum similarity for a suggestion.
	DefaultMinScore = 0.6
	// DefaultMinGap is the minimum score gap between the two best candidates.
	DefaultMinGap = 0.1
)

// Rank scores every name against key and returns them sorted by score (descending).
func Rank(key string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, Candidate{Name: name, Score: NormalizedLevenshteinScore(key, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the field name key most likely was meant to be, if a clear winner exists.
func Suggest(key string, names []string) (string, bool) {
	best := Rank(key, names).HighConfidence(DefaultMinScore, DefaultMinGap)
	if best == nil {
		return "", false
	}

	return best.Name, true
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 || c[0].Score < minScore {
		return nil
	}

	if len(c) > 1 && c[0].Score-c[1].Score < minGap {
		return nil
	}

	return &c[0]
}
