package provider

import (
	"context"
	"fmt"

	"github.com/shahar-caura/deskhand/internal/command"
)

// Request carries one command and its extracted parameter to an action backend.
type Request struct {
	Command command.ID
	// Percent is the validated target for Set* commands.
	Percent int
	// Step is the relative delta for Lower*/Raise* commands.
	Step int
	// Query is the free-text search for web commands.
	Query string
}

// Result is what an action backend reports. Backends never return errors or
// panic past their own boundary; failures are OK=false with a message.
type Result struct {
	OK      bool
	Message string
	// Unsupported marks a command with no implementation on this platform.
	Unsupported bool
}

// Succeeded builds an OK result.
func Succeeded(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a failed result.
func Failed(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Unsupported reports that the command has no implementation on this platform.
func Unsupported(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), Unsupported: true}
}

// Action executes system commands for one backend category
// (web, capture, process, display, audio).
type Action interface {
	Execute(ctx context.Context, req Request) Result
}

// Language answers free-text questions the rule table does not cover.
type Language interface {
	Ask(ctx context.Context, text string) (string, error)
}
