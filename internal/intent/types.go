package intent

import "github.com/shahar-caura/deskhand/internal/command"

// Kind tags which destination an utterance was routed to.
type Kind int

const (
	// KindGeneral routes to the conversational fallback.
	KindGeneral Kind = iota
	// KindSystem routes to a registered system command.
	KindSystem
)

func (k Kind) String() string {
	if k == KindSystem {
		return "system"
	}
	return "general"
}

// Result is the classification of one utterance. Utterance always holds the
// original, unnormalized text.
type Result struct {
	Kind      Kind
	Command   command.ID
	Utterance string
}

// System builds a system-command result.
func System(id command.ID, utterance string) Result {
	return Result{Kind: KindSystem, Command: id, Utterance: utterance}
}

// General builds a fallback result.
func General(utterance string) Result {
	return Result{Kind: KindGeneral, Utterance: utterance}
}
