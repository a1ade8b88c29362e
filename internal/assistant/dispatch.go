package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/intent"
	"github.com/shahar-caura/deskhand/internal/provider"
)

// Backends binds each category to its action backend.
type Backends map[command.Category]provider.Action

// Dispatcher validates a command's parameter and invokes its bound backend.
type Dispatcher struct {
	Backends Backends
	// Timeout bounds each backend call; zero means the caller's context only.
	Timeout time.Duration
	Logger  *slog.Logger

	// lookup is overridable for testing.
	lookup func(command.ID) (command.Spec, bool)
}

// NewDispatcher creates a Dispatcher over the static command registry.
func NewDispatcher(backends Backends, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		Backends: backends,
		Timeout:  timeout,
		Logger:   logger,
		lookup:   command.Lookup,
	}
}

// Dispatch runs id against the utterance it was classified from.
func (d *Dispatcher) Dispatch(ctx context.Context, id command.ID, utterance string) Outcome {
	spec, ok := d.lookup(id)
	if !ok {
		d.Logger.Error("registry invariant violated: classifier produced unregistered command", "command", id)
		return failed("Sorry, something went wrong handling that command.", fmt.Errorf("%w: %s", ErrUnknownCommand, id))
	}

	if spec.Static != "" {
		return succeeded(spec.Static)
	}

	req, outcome, ok := buildRequest(spec, utterance)
	if !ok {
		d.Logger.Info("command parameter rejected", "command", id, "reason", outcome.Message)
		return outcome
	}

	backend := d.Backends[spec.Category]
	if backend == nil {
		msg := fmt.Sprintf("No %s backend is available.", spec.Category)
		d.Logger.Warn("backend unavailable", "command", id, "category", spec.Category)
		return failed(msg, fmt.Errorf("%w: %s: not configured", ErrBackend, spec.Category))
	}

	res := d.invoke(ctx, backend, req)
	if !res.OK {
		msg := res.Message
		if strings.TrimSpace(msg) == "" {
			msg = fmt.Sprintf("The %s backend failed.", spec.Category)
		}
		d.Logger.Warn("backend reported failure", "command", id, "category", spec.Category, "unsupported", res.Unsupported, "message", msg)
		return failed(msg, fmt.Errorf("%w: %s: %s", ErrBackend, spec.Category, msg))
	}

	msg := res.Message
	if strings.TrimSpace(msg) == "" {
		msg = "Done."
	}
	d.Logger.Debug("command executed", "command", id, "message", msg)
	return succeeded(msg)
}

// invoke calls the backend once, converting panics and deadline overruns into
// failed results.
func (d *Dispatcher) invoke(ctx context.Context, backend provider.Action, req provider.Request) (res provider.Result) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("backend panicked", "command", req.Command, "panic", r)
			res = provider.Failed("The %s command failed unexpectedly.", req.Command)
		}
	}()

	res = backend.Execute(ctx, req)
	if !res.OK && res.Message == "" && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Message = fmt.Sprintf("The %s command timed out.", req.Command)
	}
	return res
}

// buildRequest extracts and validates the parameter spec requires. On
// rejection it returns the failed outcome and false.
func buildRequest(spec command.Spec, utterance string) (provider.Request, Outcome, bool) {
	req := provider.Request{Command: spec.ID, Step: spec.Step}

	switch spec.Param {
	case command.ParamPercent:
		n, ok := intent.ExtractNumberAfter(intent.Normalize(utterance), spec.Anchor)
		if !ok {
			msg := fmt.Sprintf("Invalid %s value. Please include a number.", spec.Domain)
			return req, failed(msg, fmt.Errorf("%w: %s: no number", ErrValidation, spec.ID)), false
		}
		if n < spec.Min || n > spec.Max {
			msg := fmt.Sprintf("%s must be between %d and %d.", capitalize(spec.Domain), spec.Min, spec.Max)
			return req, failed(msg, fmt.Errorf("%w: %s: %d out of range", ErrValidation, spec.ID, n)), false
		}
		req.Percent = n

	case command.ParamQuery:
		q := intent.ExtractQuery(utterance, spec.Noise)
		if q == "" {
			return req, failed(spec.EmptyQuery, fmt.Errorf("%w: %s: empty query", ErrValidation, spec.ID)), false
		}
		req.Query = q
	}

	return req, Outcome{}, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
