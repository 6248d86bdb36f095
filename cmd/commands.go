package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitout/internal/buildinfo"
	"github.com/thiagokokada/gitout/internal/git"
)

// splitAtDash separates positional arguments from the paths given after "--".
func splitAtDash(cmd *cobra.Command, args []string) ([]string, []string) {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[:at], args[at:]
	}
	return args, nil
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [paths...]",
		Short: "Show the working tree status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Status(cmd.Context(), git.StatusOptions{Paths: args})
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
}

func (a *app) logCmd() *cobra.Command {
	var opts git.LogOptions

	cmd := &cobra.Command{
		Use:   "log [revision] [-- paths...]",
		Short: "Show commit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			revs, paths := splitAtDash(cmd, args)
			if len(revs) > 1 {
				return fmt.Errorf("log takes at most one revision, got %d", len(revs))
			}
			if len(revs) == 1 {
				opts.Revision = revs[0]
			}
			opts.Paths = paths
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Log(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show at most this many commits")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "skip this many commits first")
	cmd.Flags().StringVar(&opts.Since, "since", "", "only commits more recent than this date")
	cmd.Flags().StringVar(&opts.Until, "until", "", "only commits older than this date")
	cmd.Flags().StringVar(&opts.Author, "author", "", "only commits by a matching author")
	cmd.Flags().BoolVar(&opts.Files, "files", false, "include changed files with line counts")
	cmd.Flags().BoolVar(&opts.FirstParent, "first-parent", false, "follow only the first parent of merges")
	return cmd
}

func (a *app) commitCmd() *cobra.Command {
	var opts git.CommitOptions

	cmd := &cobra.Command{
		Use:   "commit -m <message> [paths...]",
		Short: "Record changes to the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Commit(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "commit message")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "stage modified and deleted files first")
	cmd.Flags().BoolVar(&opts.Amend, "amend", false, "replace the tip of the current branch")
	cmd.Flags().BoolVar(&opts.AllowEmpty, "allow-empty", false, "allow a commit without changes")
	cmd.Flags().StringVar(&opts.Author, "author", "", "override the commit author")
	cmd.Flags().BoolVarP(&opts.Signoff, "signoff", "s", false, "add a Signed-off-by trailer")
	return cmd
}

func (a *app) branchCmd() *cobra.Command {
	var (
		opts      git.BranchOptions
		forceDel  []string
		renameArg bool
	)

	cmd := &cobra.Command{
		Use:   "branch [name [start-point]]",
		Short: "List, create, rename or delete branches",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(forceDel) > 0 {
				opts.Delete = append(opts.Delete, forceDel...)
				opts.Force = true
			}
			switch {
			case renameArg:
				if len(args) != 2 {
					return errors.New("branch -m needs the old and the new name")
				}
				opts.Rename = [2]string{args[0], args[1]}
			case len(args) > 0:
				opts.Create = args[0]
				if len(args) == 2 {
					opts.StartPoint = args[1]
				}
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Branch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVarP(&opts.Verbose, "heads", "v", false, "show head commit of each branch")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "list remote-tracking branches too")
	cmd.Flags().BoolVarP(&opts.Remotes, "remotes", "r", false, "list remote-tracking branches only")
	cmd.Flags().StringSliceVarP(&opts.Delete, "delete", "d", nil, "delete fully merged branches")
	cmd.Flags().StringSliceVarP(&forceDel, "force-delete", "D", nil, "delete branches regardless of merge status")
	cmd.Flags().BoolVarP(&renameArg, "move", "m", false, "rename a branch")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "reset an existing branch or rename over one")
	return cmd
}

func (a *app) checkoutCmd() *cobra.Command {
	var opts git.CheckoutOptions

	cmd := &cobra.Command{
		Use:   "checkout [-b] <branch> [start-point] | checkout -- <paths...>",
		Short: "Switch branches or restore working tree files",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, paths := splitAtDash(cmd, args)
			if len(refs) > 2 {
				return fmt.Errorf("checkout takes a branch and an optional start point, got %d arguments", len(refs))
			}
			if len(refs) > 0 {
				opts.Branch = refs[0]
			}
			if len(refs) == 2 {
				if !opts.NewBranch {
					return errors.New("a start point needs -b or -B")
				}
				opts.StartPoint = refs[1]
			}
			opts.Paths = paths
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Checkout(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVarP(&opts.NewBranch, "branch", "b", false, "create the branch first")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "discard local changes; with -b reset an existing branch")
	return cmd
}

func (a *app) mvCmd() *cobra.Command {
	var opts git.MoveOptions

	cmd := &cobra.Command{
		Use:   "mv <source...> <destination>",
		Short: "Move or rename files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Sources = args[:len(args)-1]
			opts.Destination = args[len(args)-1]
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Move(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing destination")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "only show what would happen")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	var opts git.RemoveOptions

	cmd := &cobra.Command{
		Use:   "rm [--cached] <paths...>",
		Short: "Remove files from the working tree and the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Remove(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "remove from the index only, keep files on disk")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "remove directories recursively")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "override the up-to-date check")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "only show what would be removed")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	var (
		opts              git.ResetOptions
		soft, mixed, hard bool
		merge, keep       bool
	)

	cmd := &cobra.Command{
		Use:   "reset [--soft|--mixed|--hard|--merge|--keep] [commit] [-- paths...]",
		Short: "Reset the current HEAD to a given state",
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := map[git.ResetMode]bool{
				git.ResetSoft: soft, git.ResetMixed: mixed, git.ResetHard: hard,
				git.ResetMerge: merge, git.ResetKeep: keep,
			}
			for mode, set := range modes {
				if !set {
					continue
				}
				if opts.Mode != git.ResetDefault {
					return errors.New("reset modes are exclusive")
				}
				opts.Mode = mode
			}
			refs, paths := splitAtDash(cmd, args)
			if len(refs) > 1 {
				return fmt.Errorf("reset takes at most one commit, got %d", len(refs))
			}
			if len(refs) == 1 {
				opts.Commit = refs[0]
			}
			opts.Paths = paths
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Reset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVar(&soft, "soft", false, "move HEAD only")
	cmd.Flags().BoolVar(&mixed, "mixed", false, "reset the index but not the working tree")
	cmd.Flags().BoolVar(&hard, "hard", false, "reset the index and the working tree")
	cmd.Flags().BoolVar(&merge, "merge", false, "reset keeping unmerged changes")
	cmd.Flags().BoolVar(&keep, "keep", false, "reset keeping local changes")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var opts git.AddOptions

	cmd := &cobra.Command{
		Use:   "add [-A|-u] [paths...]",
		Short: "Add file contents to the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Add(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVarP(&opts.All, "all", "A", false, "stage every change, including removals")
	cmd.Flags().BoolVarP(&opts.Update, "update", "u", false, "stage changes of tracked files only")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "allow adding ignored files")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "only show what would be added")
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	var verboseBranches bool

	cmd := &cobra.Command{
		Use:   "parse <command> [file]",
		Short: "Interpret captured git output from a file or stdin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := git.ParseCommand(args[0])
			if err != nil {
				return err
			}
			in := a.stdin
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var opts []git.ParseOption
			if verboseBranches {
				opts = append(opts, git.WithVerboseBranches())
			}
			resp, err := git.ParseOutput(command, in, opts...)
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().BoolVar(&verboseBranches, "verbose-branches", false, "read branch output as produced by git branch -v")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), a.cfg.Git)
		},
	}
}

func printVersion(w io.Writer, gitPath string) error {
	if _, err := fmt.Fprintf(w, "gitout %s\n", buildinfo.VersionWithTags()); err != nil {
		return err
	}
	if rev := buildinfo.Revision(); rev != "" {
		if _, err := fmt.Fprintf(w, "revision %s\n", rev); err != nil {
			return err
		}
	}
	client, err := git.New(git.Config{Git: gitPath})
	if err != nil {
		_, werr := fmt.Fprintf(w, "git unavailable: %v (minimum %s)\n", err, git.MinGitVersion())
		return werr
	}
	out, err := client.GitVersion()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s (minimum %s)\n", strings.TrimSpace(out), git.MinGitVersion())
	return err
}
