package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shahar-caura/deskhand/internal/command"
)

// Rule pairs a predicate over normalized text with the command it selects.
type Rule struct {
	Name    string
	Command command.ID
	Match   func(m Matcher, text string) bool
}

// Rules is evaluated first-match-wins. Parameterized rules precede the
// relative rules of the same topic so "set volume to 30 and lower it" stays a
// SetVolume. The order is a tested contract.
var Rules = []Rule{
	{"web-search", command.GoogleSearch, func(m Matcher, t string) bool {
		return m.Has(t, "search") && m.Has(t, "google")
	}},
	{"media", command.Youtube, func(m Matcher, t string) bool {
		return m.Has(t, "youtube") || (m.Has(t, "play") && m.Any(t, MediaWords))
	}},
	{"screenshot", command.Screenshot, func(m Matcher, t string) bool {
		return m.Has(t, "screenshot")
	}},
	{"word-processor", command.StartWordProject, func(m Matcher, t string) bool {
		return m.Any(t, WordProcessor)
	}},
	{"brightness-set", command.SetBrightness, func(m Matcher, t string) bool {
		return hasNumberAfter(m, t, "set brightness to")
	}},
	{"brightness-down", command.LowerBrightness, func(m Matcher, t string) bool {
		return m.Has(t, "brightness") && m.Any(t, DimWords)
	}},
	{"brightness-up", command.RaiseBrightness, func(m Matcher, t string) bool {
		return m.Has(t, "brightness") && m.Any(t, BrightenWords)
	}},
	{"volume-set", command.SetVolume, func(m Matcher, t string) bool {
		return hasNumberAfter(m, t, "set volume to")
	}},
	{"volume-down", command.LowerVolume, func(m Matcher, t string) bool {
		return m.Has(t, "volume") && m.Any(t, VolumeDownWords)
	}},
	{"volume-up", command.RaiseVolume, func(m Matcher, t string) bool {
		return m.Has(t, "volume") && m.Any(t, VolumeUpWords)
	}},
	// "unmute" contains "mute" under substring matching.
	{"mute", command.MuteVolume, func(m Matcher, t string) bool {
		return m.Has(t, "mute") && !m.Has(t, "unmute") && m.Has(t, "volume")
	}},
	{"unmute", command.UnmuteVolume, func(m Matcher, t string) bool {
		return m.Has(t, "unmute") && m.Has(t, "volume")
	}},
	{"download-music", command.DownloadMusicPlaceholder, func(m Matcher, t string) bool {
		return m.Has(t, "music") && m.Has(t, "download")
	}},
}

// Classifier evaluates Rules against an utterance. The zero value uses
// substring containment.
type Classifier struct {
	// WordBoundary requires keywords to match whole words.
	WordBoundary bool
}

// Classify routes utterance to exactly one destination.
func (c Classifier) Classify(utterance string) Result {
	text := Normalize(utterance)
	m := Matcher{WordBoundary: c.WordBoundary}
	for _, r := range Rules {
		if r.Match(m, text) {
			return System(r.Command, utterance)
		}
	}
	return General(utterance)
}

// Classify uses the default substring Classifier.
func Classify(utterance string) Result {
	return Classifier{}.Classify(utterance)
}

func hasNumberAfter(m Matcher, text, phrase string) bool {
	if !m.Has(text, phrase) {
		return false
	}
	_, ok := ExtractNumberAfter(text, phrase)
	return ok
}

// Matcher tests keyword presence in normalized text.
type Matcher struct {
	WordBoundary bool
}

// Has reports whether text contains kw.
func (m Matcher) Has(text, kw string) bool {
	if !m.WordBoundary {
		return strings.Contains(text, kw)
	}
	for from := 0; ; {
		idx := strings.Index(text[from:], kw)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(kw)
		if !wordBefore(text, start) && !wordAfter(text, end) {
			return true
		}
		from = start + 1
	}
}

// Any reports whether text contains any word of g.
func (m Matcher) Any(text string, g KeywordGroup) bool {
	for _, w := range g.Words {
		if m.Has(text, w) {
			return true
		}
	}
	return false
}

// wordBefore reports whether the rune ending at i is a word character.
func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

// wordAfter reports whether the rune starting at i is a word character.
func wordAfter(text string, i int) bool {
	if i == len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
