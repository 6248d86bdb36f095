package git

import (
	"context"
	"errors"
	"io"

	gitbackend "github.com/thiagokokada/gitout/internal/git/backend"
)

type fakeRunner struct {
	startFunc func(ctx context.Context, dir string, args []string) (gitbackend.LineStream, error)

	lastDir  string
	lastArgs []string
	streams  []*fakeStream
}

func (f *fakeRunner) Start(ctx context.Context, dir string, args []string) (gitbackend.LineStream, error) {
	f.lastDir = dir
	f.lastArgs = append([]string(nil), args...)
	if f.startFunc != nil {
		s, err := f.startFunc(ctx, dir, args)
		if fs, ok := s.(*fakeStream); ok {
			f.streams = append(f.streams, fs)
		}
		return s, err
	}
	return nil, errors.New("unexpected Start call")
}

// fakeStream replays canned output followed by an exit code.
type fakeStream struct {
	lines    []string
	exitCode int
	readErr  error
	waitErr  error

	pos    int
	closed int
}

func (s *fakeStream) Next() (string, error) {
	if s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.pos++
		return line, nil
	}
	if s.readErr != nil {
		return "", s.readErr
	}
	return "", io.EOF
}

func (s *fakeStream) Wait() (int, error) {
	return s.exitCode, s.waitErr
}

func (s *fakeStream) Close() error {
	s.closed++
	return nil
}

func cannedRunner(exitCode int, lines ...string) *fakeRunner {
	return &fakeRunner{
		startFunc: func(context.Context, string, []string) (gitbackend.LineStream, error) {
			return &fakeStream{lines: lines, exitCode: exitCode}, nil
		},
	}
}
