package backend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

type gitCLI struct {
	git string
}

// OpenCLI returns a Runner for the given git executable after checking that it
// is recent enough.
func OpenCLI(git string) (Runner, error) {
	git = strings.TrimSpace(git)
	if git == "" {
		git = "git"
	}
	if err := ensureMinGitVersion(git); err != nil {
		return nil, err
	}
	return &gitCLI{git: git}, nil
}

func (g *gitCLI) Start(ctx context.Context, dir string, args []string) (LineStream, error) {
	cmdArgs := []string{"--no-pager"}
	if dir != "" {
		cmdArgs = append(cmdArgs, "-C", dir)
	}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.CommandContext(ctx, g.git, cmdArgs...)
	// Output is parsed by its English wording, never let it be translated or paged.
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C", "GIT_PAGER=cat", "GIT_TERMINAL_PROMPT=0")

	// stdout and stderr share one pipe so error lines arrive in the same stream
	// as data lines.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("git %s pipe: %w", subcommand(args), err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	slog.Debug("git start", slog.String("git", g.git), slog.Any("args", cmdArgs))
	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, fmt.Errorf("git %s start: %w", subcommand(args), err)
	}
	// The child holds its own copy of the writer; closing ours makes EOF arrive
	// when the child exits.
	_ = pw.Close()
	return &cliStream{
		ctx:  ctx,
		name: subcommand(args),
		cmd:  cmd,
		out:  pr,
		r:    bufio.NewReader(pr),
	}, nil
}

type cliStream struct {
	ctx  context.Context
	name string
	cmd  *exec.Cmd
	out  io.ReadCloser
	r    *bufio.Reader

	waitOnce sync.Once
	exitCode int
	waitErr  error

	closeOnce sync.Once
}

func (s *cliStream) Next() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r"), nil
			}
			return "", io.EOF
		}
		return "", fmt.Errorf("git %s read: %w", s.name, err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *cliStream) Wait() (int, error) {
	s.waitOnce.Do(func() {
		err := s.cmd.Wait()
		if s.ctx != nil && s.ctx.Err() != nil {
			s.exitCode = -1
			s.waitErr = fmt.Errorf("git %s: %w", s.name, s.ctx.Err())
			return
		}
		if err == nil {
			return
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			s.exitCode = exitErr.ExitCode()
			return
		}
		s.exitCode = -1
		s.waitErr = fmt.Errorf("git %s: %w", s.name, err)
	})
	return s.exitCode, s.waitErr
}

func (s *cliStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		// Closing the read side first unblocks a child stuck on a full pipe.
		_ = s.out.Close()
		_, err = s.Wait()
	})
	return err
}

func subcommand(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return "command"
}
