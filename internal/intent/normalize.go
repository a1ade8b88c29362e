package intent

import "strings"

// Normalize lower-cases and trims an utterance. It is idempotent.
func Normalize(utterance string) string {
	return strings.TrimSpace(strings.ToLower(utterance))
}
