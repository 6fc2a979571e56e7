package lessontitle

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate for a query.
type MatchResult struct {
	Index      int // position in the candidate slice, -1 when none
	Title      string
	Score      float64
	Confidence MatchConfidence
}

// Match finds the candidate closest to query by Jaro-Winkler similarity of
// cleaned titles. A candidate containing the whole cleaned query scores at
// least 0.85 so "algebra" finds "Algebra I - Foundations".
func Match(query string, candidates []string) MatchResult {
	best := MatchResult{Index: -1, Confidence: ConfidenceNone}
	q := Clean(query)
	if q == "" {
		return best
	}

	for i, candidate := range candidates {
		c := Clean(candidate)
		score := float64(edlib.JaroWinklerSimilarity(q, c))
		if strings.Contains(c, q) && score < 0.85 {
			score = 0.85
		}
		if score > best.Score {
			best = MatchResult{Index: i, Title: candidate, Score: score}
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	}
	return best
}
