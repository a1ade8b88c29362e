package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shahar-caura/deskhand/internal/intent"
)

// EmptyUtterance is reported for blank input.
const EmptyUtterance = "Please enter a command or question."

// Assistant is the single entry point: utterance in, Outcome out. It holds no
// per-call state and is safe for concurrent use.
type Assistant struct {
	Classifier intent.Classifier
	Dispatcher *Dispatcher
	Fallback   *FallbackRouter
	Observers  []Observer
	Logger     *slog.Logger
}

// New creates an Assistant.
func New(classifier intent.Classifier, d *Dispatcher, f *FallbackRouter, logger *slog.Logger, observers ...Observer) *Assistant {
	return &Assistant{
		Classifier: classifier,
		Dispatcher: d,
		Fallback:   f,
		Observers:  observers,
		Logger:     logger,
	}
}

// Handle classifies utterance and routes it to exactly one destination.
// Every call terminates in exactly one Outcome; nothing is retried.
func (a *Assistant) Handle(ctx context.Context, utterance string) Outcome {
	start := time.Now()
	ev := Event{Utterance: utterance, Started: start}

	if strings.TrimSpace(utterance) == "" {
		ev.Outcome = failed(EmptyUtterance, fmt.Errorf("%w: empty utterance", ErrValidation))
		a.notify(ev, start)
		return ev.Outcome
	}

	res := a.Classifier.Classify(utterance)
	ev.Intent = res.Kind
	ev.Command = res.Command

	a.Logger.Debug("utterance classified", "intent", res.Kind, "command", res.Command)

	switch res.Kind {
	case intent.KindSystem:
		ev.Outcome = a.Dispatcher.Dispatch(ctx, res.Command, res.Utterance)
	default:
		ev.Outcome = a.Fallback.Route(ctx, res.Utterance)
	}

	a.notify(ev, start)
	return ev.Outcome
}

func (a *Assistant) notify(ev Event, start time.Time) {
	ev.Duration = time.Since(start)
	for _, o := range a.Observers {
		if err := o.Observe(ev); err != nil {
			a.Logger.Warn("observer failed", "error", err)
		}
	}
}
