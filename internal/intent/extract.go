package intent

import (
	"math"
	"strings"
)

// ExtractNumber returns the first maximal run of decimal digits in text as a
// non-negative integer. Runs too large for int saturate at math.MaxInt.
func ExtractNumber(text string) (int, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	n := 0
	for i := start; i < len(text) && isDigit(text[i]); i++ {
		d := int(text[i] - '0')
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt, true
		}
		n = n*10 + d
	}
	return n, true
}

// ExtractNumberAfter returns the first digit run at or after anchor. When
// anchor does not occur, or no digits follow it, the first digit run in the
// whole text is used.
func ExtractNumberAfter(text, anchor string) (int, bool) {
	if anchor != "" {
		if idx := strings.Index(text, anchor); idx >= 0 {
			if n, ok := ExtractNumber(text[idx+len(anchor):]); ok {
				return n, true
			}
		}
	}
	return ExtractNumber(text)
}

// ExtractQuery strips noise words and phrases (whole words only) from the
// normalized utterance and collapses whitespace.
func ExtractQuery(utterance string, noise []string) string {
	words := strings.Fields(Normalize(utterance))

	var kept []string
	for i := 0; i < len(words); {
		if n := matchPhrase(words[i:], noise); n > 0 {
			i += n
			continue
		}
		kept = append(kept, words[i])
		i++
	}
	return strings.Join(kept, " ")
}

// matchPhrase returns how many leading words of ws form one of the phrases,
// preferring the longest phrase.
func matchPhrase(ws []string, phrases []string) int {
	best := 0
	for _, p := range phrases {
		pw := strings.Fields(p)
		if len(pw) == 0 || len(pw) > len(ws) || len(pw) <= best {
			continue
		}
		match := true
		for j := range pw {
			if ws[j] != pw[j] {
				match = false
				break
			}
		}
		if match {
			best = len(pw)
		}
	}
	return best
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
