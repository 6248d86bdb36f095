package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandFailed matches every *CommandError.
	ErrCommandFailed = errors.New("git command failed")
	// ErrProcess matches every *ProcessError.
	ErrProcess = errors.New("git process failure")
	// ErrInvariant reports output that broke a guarantee of its own grammar, or a
	// record mutated in a way the parsers never should.
	ErrInvariant = errors.New("invariant violation")
	// ErrInvalidArgument is returned before anything is spawned when options are unusable.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CommandError is returned when git reported a failure in its output. Lines holds
// every line seen from the first failing one onwards, with original line numbers.
type CommandError struct {
	Command Command
	Code    int
	Lines   []Line
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s failed (code %d): %s", e.Command, e.Code, formatErrorLines(e.Lines))
}

func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// Context renders the accumulated lines as line<N>=[<text>], comma-joined.
func (e *CommandError) Context() string {
	return formatErrorLines(e.Lines)
}

// ProcessError is returned when the git process could not be started, read from
// or waited on. No output is guaranteed to have been produced.
type ProcessError struct {
	Command Command
	Op      string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("git %s %s: %v", e.Command, e.Op, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcess
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func formatErrorLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("line%d=[%s]", l.Number, l.Text))
	}
	return strings.Join(parts, ", ")
}
