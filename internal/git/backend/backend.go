package backend

import "context"

// Runner starts git processes and exposes their merged output as a stream of lines.
//
// The default implementation shells out to the git executable; tests substitute a
// canned stream so parsers can be exercised without spawning anything.
type Runner interface {
	Start(ctx context.Context, dir string, args []string) (LineStream, error)
}

// LineStream yields the output of one process in emission order.
type LineStream interface {
	// Next returns the next line without its terminator, or io.EOF once the
	// output is drained.
	Next() (string, error)
	// Wait blocks until the process exits and reports its exit code. A non-zero
	// exit is not an error; err is only set when the process could not be
	// waited on or was killed.
	Wait() (exitCode int, err error)
	// Close releases the process. It is safe to call after Wait and more than once.
	Close() error
}
