package intent

// KeywordGroup is a named set of synonymous lowercase keywords.
type KeywordGroup struct {
	Name  string
	Words []string
}

// Keyword groups used by the rule table. Read-only after init.
var (
	DimWords        = KeywordGroup{Name: "dim", Words: []string{"lower", "decrease", "dim", "down", "reduce", "less"}}
	BrightenWords   = KeywordGroup{Name: "brighten", Words: []string{"higher", "increase", "brighten", "up", "more"}}
	VolumeDownWords = KeywordGroup{Name: "volume-down", Words: []string{"lower", "decrease", "quiet", "down", "reduce", "less"}}
	VolumeUpWords   = KeywordGroup{Name: "volume-up", Words: []string{"higher", "increase", "loud", "up", "more"}}
	MediaWords      = KeywordGroup{Name: "media", Words: []string{"song", "video", "music"}}
	WordProcessor   = KeywordGroup{Name: "word-processor", Words: []string{"start word", "open word", "word project"}}
)

// Groups returns every keyword group.
func Groups() []KeywordGroup {
	return []KeywordGroup{DimWords, BrightenWords, VolumeDownWords, VolumeUpWords, MediaWords, WordProcessor}
}
