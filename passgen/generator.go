// Package passgen generates random passwords and scores the strength of
// existing ones.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*-_=+?"

	similarChars   = "Il1O0"
	ambiguousChars = "{}[]()/\\'\"`~,;:.<>"
)

var ErrNoCharset = errors.New("passgen: no character set enabled")

// Generator builds random passwords from a configurable character pool.
// All randomness comes from crypto/rand.
type Generator struct {
	length           int
	useUppercase     bool
	useLowercase     bool
	useDigits        bool
	useSymbols       bool
	excludeSimilar   bool
	excludeAmbiguous bool
}

// New returns a generator producing 16-character passwords drawing from
// every character class.
func New() Generator {
	return Generator{
		length:       16,
		useUppercase: true,
		useLowercase: true,
		useDigits:    true,
		useSymbols:   true,
	}
}

func (g Generator) Length(n int) Generator           { g.length = n; return g }
func (g Generator) Uppercase(on bool) Generator      { g.useUppercase = on; return g }
func (g Generator) Lowercase(on bool) Generator      { g.useLowercase = on; return g }
func (g Generator) Digits(on bool) Generator         { g.useDigits = on; return g }
func (g Generator) Symbols(on bool) Generator        { g.useSymbols = on; return g }
func (g Generator) ExcludeSimilar(on bool) Generator { g.excludeSimilar = on; return g }
func (g Generator) ExcludeAmbiguous(on bool) Generator {
	g.excludeAmbiguous = on
	return g
}

func (g Generator) filter(set string) string {
	if g.excludeSimilar {
		set = strings.Map(func(r rune) rune {
			if strings.ContainsRune(similarChars, r) {
				return -1
			}
			return r
		}, set)
	}
	if g.excludeAmbiguous {
		set = strings.Map(func(r rune) rune {
			if strings.ContainsRune(ambiguousChars, r) {
				return -1
			}
			return r
		}, set)
	}
	return set
}

// charsets returns the enabled classes after exclusion filtering. A class
// whose characters are all excluded is dropped entirely so a zero-length
// set never reaches the samplers.
func (g Generator) charsets() []string {
	var sets []string
	add := func(set string) {
		if set = g.filter(set); set != "" {
			sets = append(sets, set)
		}
	}
	if g.useUppercase {
		add(uppercaseChars)
	}
	if g.useLowercase {
		add(lowercaseChars)
	}
	if g.useDigits {
		add(digitChars)
	}
	if g.useSymbols {
		add(symbolChars)
	}
	return sets
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Generate samples uniformly from the combined pool of enabled classes.
func (g Generator) Generate() (string, error) {
	if g.length < 1 {
		return "", fmt.Errorf("passgen: invalid length %d", g.length)
	}
	pool := strings.Join(g.charsets(), "")
	if pool == "" {
		return "", ErrNoCharset
	}
	out := make([]byte, g.length)
	for i := range out {
		idx, err := randIndex(len(pool))
		if err != nil {
			return "", err
		}
		out[i] = pool[idx]
	}
	return string(out), nil
}

// GenerateComplex guarantees at least one character from every enabled
// class, then fills the rest from the combined pool and shuffles.
func (g Generator) GenerateComplex() (string, error) {
	sets := g.charsets()
	if len(sets) == 0 {
		return "", ErrNoCharset
	}
	if g.length < len(sets) {
		return "", fmt.Errorf("passgen: length %d cannot cover %d character classes", g.length, len(sets))
	}

	out := make([]byte, 0, g.length)
	for _, set := range sets {
		idx, err := randIndex(len(set))
		if err != nil {
			return "", err
		}
		out = append(out, set[idx])
	}

	pool := strings.Join(sets, "")
	for len(out) < g.length {
		idx, err := randIndex(len(pool))
		if err != nil {
			return "", err
		}
		out = append(out, pool[idx])
	}

	// Fisher-Yates so the guaranteed characters don't cluster at the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
