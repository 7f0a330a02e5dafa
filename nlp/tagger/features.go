package tagger

import (
	"strconv"
	"strings"
	"unicode"
)

// Sentence-edge placeholders for context features. The trainer uses the
// same literals; feature strings must match its construction exactly.
const (
	START  = "-START-"
	START2 = "-START2-"
	END    = "-END-"
)

// context is the rolling decoding history threaded through the per-token
// loop: the previous two predicted tags.
type context struct {
	prevTag, prev2Tag string
}

var initialContext = context{START, START2}

func (c context) advance(tag string) context {
	return context{tag, c.prevTag}
}

// extract builds the feature set for position i. Every feature is a
// deterministic "name=value" string; sparse boolean flags are emitted only
// when true, so a position yields 18 to 24 features.
func extract(tokens []string, i int, ctx context) []string {
	word := tokens[i]
	lower := strings.ToLower(word)

	prevWord, nextWord := START, END
	if i > 0 {
		prevWord = tokens[i-1]
	}
	if i+1 < len(tokens) {
		nextWord = tokens[i+1]
	}

	features := make([]string, 0, 24)
	add := func(name, value string) {
		features = append(features, name+"="+value)
	}

	add("w", word)
	add("wl", lower)
	add("suf1", suffix(lower, 1))
	add("suf2", suffix(lower, 2))
	add("suf3", suffix(lower, 3))
	add("pre1", prefix(lower, 1))
	add("shape", Shape(word))
	add("w-1", prevWord)
	add("wl-1", strings.ToLower(prevWord))
	add("w+1", nextWord)
	add("wl+1", strings.ToLower(nextWord))
	add("t-1", ctx.prevTag)
	add("t-2", ctx.prev2Tag)
	add("t-1|w", ctx.prevTag+"|"+word)
	add("t-2|w", ctx.prev2Tag+"|"+word)
	add("t-1|w-1", ctx.prevTag+"|"+prevWord)
	add("t-1|t-2|w", ctx.prevTag+"|"+ctx.prev2Tag+"|"+word)
	add("suf3+1", suffix(strings.ToLower(nextWord), 3))

	flag := func(name string, on bool) {
		if on {
			features = append(features, "f:"+name)
		}
	}
	flag("upper", isUpper(word))
	flag("title", isTitle(word))
	flag("digit", isDigit(word))
	flag("hasdigit", hasDigit(word))
	flag("hyphen", strings.Contains(word, "-"))
	flag("first", i == 0)

	return features
}

func suffix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Shape collapses a word into a case/digit signature: uppercase runs become
// "X", lowercase runs "x", digit runs "d", anything else stays literal, and
// adjacent runs of the same class collapse. "iPhone-11" becomes "xXx-d".
func Shape(word string) string {
	var (
		out  strings.Builder
		last rune = -1
	)
	for _, r := range word {
		var class rune
		switch {
		case unicode.IsUpper(r):
			class = 'X'
		case unicode.IsLower(r):
			class = 'x'
		case unicode.IsDigit(r):
			class = 'd'
		default:
			class = r
		}
		if class == last && (class == 'X' || class == 'x' || class == 'd') {
			continue
		}
		out.WriteRune(class)
		last = class
	}
	return out.String()
}

func isUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isTitle(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isDigit(word string) bool {
	if _, err := strconv.Atoi(word); err == nil {
		return true
	}
	if len(word) == 0 {
		return false
	}
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
