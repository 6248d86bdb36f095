package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	gitbackend "github.com/thiagokokada/gitout/internal/git/backend"
)

// Config selects the git executable and repository an invocation runs against.
// It is passed explicitly; nothing here reads process-wide state.
type Config struct {
	// Git is the executable to run; "git" from PATH when empty.
	Git string
	// Dir is the repository (or any directory inside it); the current directory when empty.
	Dir string
	// Timeout bounds each invocation; zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// Client runs git commands and interprets their output.
type Client struct {
	cfg    Config
	runner gitbackend.Runner
}

// New returns a Client backed by the git executable named in cfg.
func New(cfg Config) (*Client, error) {
	runner, err := gitbackend.OpenCLI(cfg.Git)
	if err != nil {
		return nil, err
	}
	return NewWithRunner(cfg, runner), nil
}

// NewWithRunner returns a Client using runner to start processes.
func NewWithRunner(cfg Config, runner gitbackend.Runner) *Client {
	return &Client{cfg: cfg, runner: runner}
}

// Config returns the settings the client was created with.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) Status(ctx context.Context, opts StatusOptions) (*StatusResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*StatusResponse](ctx, c, CommandStatus, args, parserOptions{})
}

func (c *Client) Log(ctx context.Context, opts LogOptions) (*LogResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*LogResponse](ctx, c, CommandLog, args, parserOptions{commitHandler: opts.Handler})
}

func (c *Client) Commit(ctx context.Context, opts CommitOptions) (*CommitResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*CommitResponse](ctx, c, CommandCommit, args, parserOptions{})
}

func (c *Client) Branch(ctx context.Context, opts BranchOptions) (*BranchResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*BranchResponse](ctx, c, CommandBranch, args, parserOptions{verboseBranches: opts.Verbose})
}

func (c *Client) Checkout(ctx context.Context, opts CheckoutOptions) (*CheckoutResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*CheckoutResponse](ctx, c, CommandCheckout, args, parserOptions{})
}

func (c *Client) Move(ctx context.Context, opts MoveOptions) (*MoveResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*MoveResponse](ctx, c, CommandMove, args, parserOptions{})
}

func (c *Client) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*RemoveResponse](ctx, c, CommandRemove, args, parserOptions{})
}

func (c *Client) Reset(ctx context.Context, opts ResetOptions) (*ResetResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*ResetResponse](ctx, c, CommandReset, args, parserOptions{})
}

func (c *Client) Add(ctx context.Context, opts AddOptions) (*AddResponse, error) {
	args, err := opts.args()
	if err != nil {
		return nil, err
	}
	return run[*AddResponse](ctx, c, CommandAdd, args, parserOptions{})
}

func run[R Response](ctx context.Context, c *Client, cmd Command, args []string, opts parserOptions) (R, error) {
	var zero R
	p, err := newParser(cmd, opts)
	if err != nil {
		return zero, err
	}
	resp, err := c.invoke(ctx, cmd, args, p)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(R)
	if !ok {
		return zero, invariantf("%s parser produced %T", cmd, resp)
	}
	return typed, nil
}

// invoke starts git, feeds every output line to p in order, waits for the
// process and finalizes p. The process is released on every path.
func (c *Client) invoke(ctx context.Context, cmd Command, args []string, p lineParser) (resp Response, err error) {
	if c.runner == nil {
		return nil, &ProcessError{Command: cmd, Op: "start", Err: errors.New("no runner configured")}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	logger := slog.With(slog.String("invocation", uuid.NewString()), slog.String("command", cmd.String()))
	logger.Debug("git invocation start", slog.Any("args", args), slog.String("dir", c.cfg.Dir))

	stream, err := c.runner.Start(ctx, c.cfg.Dir, args)
	if err != nil {
		return nil, &ProcessError{Command: cmd, Op: "start", Err: err}
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			logger.Debug("git stream close", slog.Any("error", cerr))
		}
	}()

	n := 0
	for {
		text, rerr := stream.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, &ProcessError{Command: cmd, Op: "read", Err: rerr}
		}
		n++
		if perr := p.parseLine(Line{Number: n, Text: text}); perr != nil {
			logger.Debug("git output rejected", slog.Int("line", n), slog.Any("error", perr))
			return nil, fmt.Errorf("git %s line %d: %w", cmd, n, perr)
		}
	}

	exitCode, werr := stream.Wait()
	if werr != nil {
		return nil, &ProcessError{Command: cmd, Op: "wait", Err: werr}
	}
	logger.Debug("git invocation done", slog.Int("exit_code", exitCode), slog.Int("lines", n))

	resp, err = finalize(cmd, p, exitCode)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			logger.Debug("git reported failure", slog.Int("code", cmdErr.Code), slog.Int("failed_lines", len(cmdErr.Lines)))
		}
		return nil, err
	}
	return resp, nil
}
