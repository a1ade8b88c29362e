package history

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shahar-caura/deskhand/internal/assistant"
)

// Recorder journals every handled utterance. It implements assistant.Observer.
type Recorder struct {
	Logger *slog.Logger

	// newID is overridable for testing.
	newID func(time.Time) string
}

// NewRecorder creates a Recorder writing into the current history directory.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{Logger: logger, newID: NewID}
}

// FromEvent converts an assistant event into a journal entry.
func FromEvent(id string, ev assistant.Event) *Entry {
	e := &Entry{
		ID:         id,
		Utterance:  ev.Utterance,
		Command:    string(ev.Command),
		Status:     string(ev.Outcome.Status),
		Message:    ev.Outcome.Message,
		CreatedAt:  ev.Started,
		DurationMS: ev.Duration.Milliseconds(),
	}
	// Blank utterances are rejected before classification.
	if strings.TrimSpace(ev.Utterance) != "" {
		e.Intent = ev.Intent.String()
	}
	if ev.Outcome.Err != nil {
		e.Error = ev.Outcome.Err.Error()
	}
	return e
}

func (r *Recorder) Observe(ev assistant.Event) error {
	e := FromEvent(r.newID(ev.Started), ev)
	if err := e.Save(); err != nil {
		return err
	}
	r.Logger.Debug("history entry saved", "id", e.ID)
	return nil
}
