package stagehand

import (
	"errors"
	"fmt"
)

// Sentinel errors for run-fatal conditions. They always reach the caller
// wrapped in a [*PhaseError] identifying the phase and round.
var (
	// ErrUnknownTool means the model referenced a tool name absent from the
	// active tool set. Not retried: the tool set is fixed for the run, so
	// retrying cannot succeed.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrMaxRounds means a phase exhausted its round budget while the model
	// was still requesting tool calls.
	ErrMaxRounds = errors.New("max rounds exceeded")
)

// PhaseError is the single error shape a failed run produces. It identifies
// the phase and round that failed and wraps the underlying cause. The
// permanent record accumulated up to the failure stays readable on the
// Transcript for partial output.
type PhaseError struct {
	// Phase is the name of the phase that failed.
	Phase string

	// Round is the 1-based round in which the failure occurred, or 0 when
	// the failure happened outside the round loop.
	Round int

	// Err is the underlying cause.
	Err error
}

func (e *PhaseError) Error() string {
	if e.Round > 0 {
		return fmt.Sprintf("phase %q round %d: %v", e.Phase, e.Round, e.Err)
	}
	return fmt.Sprintf("phase %q: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// phaseErr wraps err with phase/round identity unless it already is a
// PhaseError.
func phaseErr(phase string, round int, err error) error {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	return &PhaseError{Phase: phase, Round: round, Err: err}
}
