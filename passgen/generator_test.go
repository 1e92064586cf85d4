package passgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	for _, n := range []int{4, 16, 64} {
		pw, err := New().Length(n).Generate()
		require.NoError(t, err)
		assert.Len(t, pw, n)
	}
}

func TestGenerateRespectsCharsets(t *testing.T) {
	pw, err := New().Uppercase(false).Symbols(false).Length(64).Generate()
	require.NoError(t, err)
	for _, r := range pw {
		assert.False(t, strings.ContainsRune(uppercaseChars, r), "unexpected uppercase %q", r)
		assert.False(t, strings.ContainsRune(symbolChars, r), "unexpected symbol %q", r)
	}
}

func TestGenerateNoCharset(t *testing.T) {
	_, err := New().Uppercase(false).Lowercase(false).Digits(false).Symbols(false).Generate()
	assert.ErrorIs(t, err, ErrNoCharset)
}

func TestGenerateInvalidLength(t *testing.T) {
	_, err := New().Length(0).Generate()
	assert.Error(t, err)
}

func TestGenerateComplexCoversEveryClass(t *testing.T) {
	for i := 0; i < 32; i++ {
		pw, err := New().Length(8).GenerateComplex()
		require.NoError(t, err)
		assert.True(t, strings.ContainsAny(pw, uppercaseChars), "missing uppercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, lowercaseChars), "missing lowercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol in %q", pw)
	}
}

func TestGenerateComplexLengthTooShort(t *testing.T) {
	_, err := New().Length(3).GenerateComplex()
	assert.Error(t, err)
}

func TestCharsetsDropFullyExcludedClasses(t *testing.T) {
	// No combination of toggles and exclusions may yield an empty set;
	// an empty set would make the samplers draw from a zero-length pool.
	for mask := 0; mask < 16; mask++ {
		g := New().
			Uppercase(mask&1 != 0).
			Lowercase(mask&2 != 0).
			Digits(mask&4 != 0).
			Symbols(mask&8 != 0).
			ExcludeSimilar(true).
			ExcludeAmbiguous(true)
		for _, set := range g.charsets() {
			assert.NotEmpty(t, set, "mask %#x", mask)
		}
	}
}

func TestGenerateComplexWithExclusions(t *testing.T) {
	pw, err := New().ExcludeSimilar(true).ExcludeAmbiguous(true).Length(8).GenerateComplex()
	require.NoError(t, err)
	assert.Len(t, pw, 8)
	assert.False(t, strings.ContainsAny(pw, similarChars))
	assert.False(t, strings.ContainsAny(pw, ambiguousChars))
}

func TestGenerateExcludeSimilar(t *testing.T) {
	pw, err := New().ExcludeSimilar(true).Length(128).Generate()
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(pw, similarChars), "similar char in %q", pw)
}

func TestGenerateExcludeAmbiguous(t *testing.T) {
	pw, err := New().ExcludeAmbiguous(true).Length(128).Generate()
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(pw, ambiguousChars), "ambiguous char in %q", pw)
}
