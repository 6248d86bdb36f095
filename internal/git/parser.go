package git

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// lineParser is implemented by one parser per command. Lines must be fed in the
// order git emitted them; parseLine only fails on an invariant violation.
type lineParser interface {
	parseLine(line Line) error
	failures() *errorLog
	response() Response
}

type parserOptions struct {
	verboseBranches bool
	commitHandler   func(Commit)
}

// ParseOption tunes how output is interpreted.
type ParseOption func(*parserOptions)

// WithVerboseBranches reads branch listings as produced by "git branch -v".
func WithVerboseBranches() ParseOption {
	return func(o *parserOptions) { o.verboseBranches = true }
}

// WithCommitHandler delivers each log record to fn as soon as it is complete
// instead of collecting it in LogResponse.Commits.
func WithCommitHandler(fn func(Commit)) ParseOption {
	return func(o *parserOptions) { o.commitHandler = fn }
}

func newParser(cmd Command, opts parserOptions) (lineParser, error) {
	switch cmd {
	case CommandAdd:
		return newAddParser(), nil
	case CommandBranch:
		return newBranchParser(opts.verboseBranches), nil
	case CommandCheckout:
		return newCheckoutParser(), nil
	case CommandCommit:
		return newCommitParser(), nil
	case CommandLog:
		return newLogParser(opts.commitHandler), nil
	case CommandMove:
		return newMoveParser(), nil
	case CommandRemove:
		return newRemoveParser(), nil
	case CommandReset:
		return newResetParser(), nil
	case CommandStatus:
		return newStatusParser(), nil
	default:
		return nil, invalidArgf("unsupported command %s", cmd)
	}
}

// finalize turns the parser state into the response or, when an error line was
// seen, into a CommandError carrying every failure line.
func finalize(cmd Command, p lineParser, exitCode int) (Response, error) {
	if log := p.failures(); log.failed() {
		return nil, &CommandError{
			Command: cmd,
			Code:    cmd.Code(),
			Lines:   slices.Clone(log.lines),
		}
	}
	resp := p.response()
	if o, ok := resp.(interface{ setExitCode(int) }); ok {
		o.setExitCode(exitCode)
	}
	return resp, nil
}

// ParseLines interprets already captured output of cmd. Exit code is assumed 0.
func ParseLines(cmd Command, lines []string, opts ...ParseOption) (Response, error) {
	p, err := buildParser(cmd, opts)
	if err != nil {
		return nil, err
	}
	for i, text := range lines {
		if err := p.parseLine(Line{Number: i + 1, Text: text}); err != nil {
			return nil, err
		}
	}
	return finalize(cmd, p, 0)
}

// ParseOutput is ParseLines over a reader.
func ParseOutput(cmd Command, r io.Reader, opts ...ParseOption) (Response, error) {
	p, err := buildParser(cmd, opts)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	n := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			n++
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			if perr := p.parseLine(Line{Number: n, Text: text}); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s output: %w", cmd, err)
		}
	}
	return finalize(cmd, p, 0)
}

func buildParser(cmd Command, opts []ParseOption) (lineParser, error) {
	var o parserOptions
	for _, opt := range opts {
		opt(&o)
	}
	return newParser(cmd, o)
}
