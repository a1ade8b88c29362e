package assistant

import (
	"errors"
	"time"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/intent"
)

// Status is the terminal state of one handled utterance.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Outcome is the user-facing result of handling one utterance. Message is
// never empty.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`

	// Err carries the classified cause of a failed outcome.
	Err error `json:"-"`
}

// OK reports whether the outcome succeeded.
func (o Outcome) OK() bool { return o.Status == StatusOK }

func succeeded(msg string) Outcome {
	return Outcome{Status: StatusOK, Message: msg}
}

func failed(msg string, err error) Outcome {
	return Outcome{Status: StatusFailed, Message: msg, Err: err}
}

var (
	// ErrValidation indicates a missing or out-of-range parameter.
	ErrValidation = errors.New("validation failed")

	// ErrBackend indicates an action backend reported failure or is unavailable.
	ErrBackend = errors.New("action backend failed")

	// ErrLanguage indicates the language backend failed, timed out or said nothing.
	ErrLanguage = errors.New("language backend failed")

	// ErrUnknownCommand indicates the classifier produced a command the registry
	// does not know. It is an internal invariant violation.
	ErrUnknownCommand = errors.New("unknown command")
)

// Event describes one Handle call for observers.
type Event struct {
	Utterance string
	Intent    intent.Kind
	Command   command.ID
	Outcome   Outcome
	Started   time.Time
	Duration  time.Duration
}

// Observer receives an Event after every Handle call.
type Observer interface {
	Observe(ev Event) error
}
