package lessontitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Algebra I - Foundations", "algebra i foundations"},
		{"Café & Croissants", "cafe and croissants"},
		{"  Intro_to.Sets!  ", "intro to sets"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestMatch(t *testing.T) {
	candidates := []string{"Calculus II", "Algebra I - Foundations", "Linear Algebra"}

	got := Match("algebra i foundations", candidates)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, "Algebra I - Foundations", got.Title)
	assert.Equal(t, ConfidenceHigh, got.Confidence)
}

func TestMatch_Substring(t *testing.T) {
	got := Match("calculus", []string{"Calculus II", "History of Art"})
	assert.Equal(t, 0, got.Index)
	assert.GreaterOrEqual(t, got.Score, 0.85)
}

func TestMatch_NoCandidates(t *testing.T) {
	got := Match("anything", nil)
	assert.Equal(t, -1, got.Index)
	assert.Equal(t, ConfidenceNone, got.Confidence)

	got = Match("   ", []string{"x"})
	assert.Equal(t, -1, got.Index)
}

func TestMatchConfidence_String(t *testing.T) {
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "none", ConfidenceNone.String())
}
