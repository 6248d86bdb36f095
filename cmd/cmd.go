package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thiagokokada/gitout/internal/config"
	"github.com/thiagokokada/gitout/internal/git"
)

func Run() error {
	return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

type app struct {
	v          *viper.Viper
	configPath string
	cfg        config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{v: config.New(), stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gitout",
		Short:         "Run git commands and print their output as structured data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gitout/gitout.yaml)")
	flags.String("git", "git", "git executable")
	flags.StringP("dir", "C", ".", "run git in this directory")
	flags.Duration("timeout", 0, "abort git after this long (0 disables)")
	flags.String("format", config.FormatJSON, "output format: json or yaml")
	flags.Bool("verbose", false, "enable verbose logging")
	for _, name := range []string{"git", "dir", "timeout", "format", "verbose"} {
		// Lookup never fails for a flag registered just above.
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.statusCmd(),
		a.logCmd(),
		a.commitCmd(),
		a.branchCmd(),
		a.checkoutCmd(),
		a.mvCmd(),
		a.rmCmd(),
		a.resetCmd(),
		a.addCmd(),
		a.parseCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("config loaded",
		slog.String("git", cfg.Git),
		slog.String("dir", cfg.Dir),
		slog.Duration("timeout", cfg.Timeout),
		slog.String("format", cfg.Format),
	)
	return nil
}

func (a *app) client() (*git.Client, error) {
	return git.New(a.cfg.GitConfig())
}

func (a *app) print(resp any) error {
	return encode(a.stdout, a.cfg.Format, resp)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
