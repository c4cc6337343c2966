package prompt

import "errors"

// ErrCancelled is the one propagating signal of the prompt layer: the
// user interrupted input. It must unwind through every open prompt up
// to the batch loop and halt it. All other prompt failures are
// recovered locally by callers.
var ErrCancelled = errors.New("input cancelled")

// ErrNoValue reports an empty answer to a prompt without a default.
var ErrNoValue = errors.New("no value and no default provided")

// ErrInvalidValue reports an answer that could not be parsed.
var ErrInvalidValue = errors.New("invalid value provided")

// Prompter is the capability interface for interactive input. The
// orchestrator's decision logic only talks to this, so tests can script
// answers instead of driving a real terminal.
//
// Every method returns the default alongside a non-cancel error, which
// lets callers fall back to the default without special-casing.
type Prompter interface {
	AskString(label, def string) (string, error)
	AskInt(label string, def int) (int, error)
	AskBool(label string, def bool) (bool, error)
}
