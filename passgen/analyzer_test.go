package passgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCommonPassword(t *testing.T) {
	a := NewAnalyzer()

	for _, pw := range []string{"password", "Password", "123456", "qwerty"} {
		result := a.Analyze(pw)
		assert.Equal(t, 0, result.Score, "%q should score zero", pw)
		assert.Equal(t, VeryWeak, result.Strength)
		assert.NotEmpty(t, result.Issues)
	}
}

func TestAnalyzeShortPassword(t *testing.T) {
	result := NewAnalyzer().Analyze("ab1!")
	assert.Less(t, result.Score, 41)
	assert.NotEmpty(t, result.Issues)
	assert.NotEmpty(t, result.Suggestions)
}

func TestAnalyzeStrongPassword(t *testing.T) {
	result := NewAnalyzer().Analyze("kT9#mWq2$xLp7!vZ")
	assert.GreaterOrEqual(t, result.Score, 61)
	assert.Contains(t, []Strength{Strong, VeryStrong}, result.Strength)
}

func TestAnalyzePenalizesRepetitions(t *testing.T) {
	base := NewAnalyzer().Analyze("kT9#mWq2$xLp7!vZ")
	repeated := NewAnalyzer().Analyze("kT9#mWqqq$xLp7!v")
	assert.Less(t, repeated.Score, base.Score)
}

func TestAnalyzePenalizesSequences(t *testing.T) {
	result := NewAnalyzer().Analyze("kT9#mWabc$xLp7!v")
	assert.Contains(t, result.Issues, "contains predictable sequences")
}

func TestStrengthString(t *testing.T) {
	assert.Equal(t, "very weak", VeryWeak.String())
	assert.Equal(t, "very strong", VeryStrong.String())
	assert.Equal(t, "unknown", Strength(99).String())
}
