package passgen

import (
	"strings"
	"unicode"
)

type Strength int

const (
	VeryWeak Strength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case VeryWeak:
		return "very weak"
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// Analysis is the result of scoring one password.
type Analysis struct {
	Strength    Strength
	Score       int // 0-100
	Issues      []string
	Suggestions []string
}

// Analyzer scores passwords against length, character variety, a list of
// common passwords, and repetition/sequence patterns.
type Analyzer struct {
	common map[string]struct{}
}

var commonPasswords = []string{
	"password", "123456", "password123", "admin", "qwerty",
	"letmein", "welcome", "monkey", "1234567890", "abc123",
	"password1", "123456789", "welcome123", "admin123",
	"root", "toor", "pass", "test", "guest", "user",
	"azerty", "motdepasse", "secret", "changeme", "default",
}

func NewAnalyzer() *Analyzer {
	a := &Analyzer{common: make(map[string]struct{}, len(commonPasswords))}
	for _, pwd := range commonPasswords {
		a.common[pwd] = struct{}{}
	}
	return a
}

func (a *Analyzer) Analyze(password string) Analysis {
	score := 0
	var issues, suggestions []string

	if len(password) < 8 {
		issues = append(issues, "password is too short (fewer than 8 characters)")
		suggestions = append(suggestions, "use at least 8 characters")
	} else {
		score += 20
	}
	if len(password) >= 12 {
		score += 10
	}
	if len(password) >= 16 {
		score += 10
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	classes := 0
	for _, has := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if has {
			classes++
		}
	}
	switch classes {
	case 1:
		issues = append(issues, "uses only one character class")
		suggestions = append(suggestions, "mix upper case, lower case, digits, and symbols")
	case 2:
		score += 15
		suggestions = append(suggestions, "add digits and/or symbols")
	case 3:
		score += 25
		suggestions = append(suggestions, "add symbols for extra strength")
	case 4:
		score += 35
	}

	if _, ok := a.common[strings.ToLower(password)]; ok {
		score = 0
		issues = append(issues, "extremely common, easily guessed password")
		suggestions = append(suggestions, "use the generator to create a unique password")
	}

	if hasRepetitions(password) {
		score = max(0, score-15)
		issues = append(issues, "contains repeated characters")
		suggestions = append(suggestions, "avoid runs like 'aaa' or '111'")
	}
	if hasSequences(password) {
		score = max(0, score-10)
		issues = append(issues, "contains predictable sequences")
		suggestions = append(suggestions, "avoid sequences like 'abc' or '123'")
	}

	var strength Strength
	switch {
	case score <= 20:
		strength = VeryWeak
	case score <= 40:
		strength = Weak
	case score <= 60:
		strength = Medium
	case score <= 80:
		strength = Strong
	default:
		strength = VeryStrong
	}

	return Analysis{
		Strength:    strength,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func hasRepetitions(password string) bool {
	runes := []rune(password)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

func hasSequences(password string) bool {
	runes := []rune(password)
	for i := 0; i+2 < len(runes); i++ {
		a, b, c := runes[i], runes[i+1], runes[i+2]
		if (b == a+1 && c == b+1) || (b == a-1 && c == b-1) {
			return true
		}
	}
	return false
}
