package git

import (
	"strconv"
	"strings"
)

type StatusOptions struct {
	Paths []string
}

func (o StatusOptions) args() ([]string, error) {
	args := []string{"status"}
	return appendPaths(args, o.Paths), nil
}

type LogOptions struct {
	// Revision to start from; empty means HEAD.
	Revision string
	Paths    []string
	Limit    int
	Skip     int
	Since    string
	Until    string
	Author   string
	// Files adds per-file raw diff and numstat entries to each record.
	Files bool
	// FirstParent follows only the first parent of merges.
	FirstParent bool
	// Handler, when set, receives each record as soon as it is parsed instead of
	// having it kept in LogResponse.Commits.
	Handler func(Commit)
}

func (o LogOptions) args() ([]string, error) {
	if o.Limit < 0 || o.Skip < 0 {
		return nil, invalidArgf("log limit and skip must not be negative")
	}
	args := []string{"log", "--no-color", "--pretty=fuller", "--parents", "--decorate=short"}
	if o.Files {
		args = append(args, "--raw", "--numstat", "--no-abbrev")
	}
	if o.FirstParent {
		args = append(args, "--first-parent")
	}
	if o.Limit > 0 {
		args = append(args, "--max-count="+strconv.Itoa(o.Limit))
	}
	if o.Skip > 0 {
		args = append(args, "--skip="+strconv.Itoa(o.Skip))
	}
	if o.Since != "" {
		args = append(args, "--since="+o.Since)
	}
	if o.Until != "" {
		args = append(args, "--until="+o.Until)
	}
	if o.Author != "" {
		args = append(args, "--author="+o.Author)
	}
	if o.Revision != "" {
		if strings.HasPrefix(o.Revision, "-") {
			return nil, invalidArgf("revision %q looks like an option", o.Revision)
		}
		args = append(args, o.Revision)
	}
	return appendPaths(args, o.Paths), nil
}

type CommitOptions struct {
	Message string
	// All stages modified and deleted tracked files first (-a).
	All        bool
	Amend      bool
	AllowEmpty bool
	Author     string
	Signoff    bool
	Paths      []string
}

func (o CommitOptions) args() ([]string, error) {
	if strings.TrimSpace(o.Message) == "" {
		return nil, invalidArgf("commit message is required")
	}
	if o.All && len(o.Paths) > 0 {
		return nil, invalidArgf("commit -a cannot be combined with paths")
	}
	args := []string{"commit", "-m", o.Message}
	if o.All {
		args = append(args, "-a")
	}
	if o.Amend {
		args = append(args, "--amend")
	}
	if o.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if o.Author != "" {
		args = append(args, "--author="+o.Author)
	}
	if o.Signoff {
		args = append(args, "--signoff")
	}
	return appendPaths(args, o.Paths), nil
}

type BranchOptions struct {
	// Delete removes the named branches; Force uses -D instead of -d.
	Delete []string
	Force  bool
	// Create makes a new branch at StartPoint (HEAD when empty).
	Create     string
	StartPoint string
	// Rename moves Rename[0] to Rename[1].
	Rename [2]string
	// Listing flags.
	Verbose bool
	All     bool
	Remotes bool
}

func (o BranchOptions) args() ([]string, error) {
	modes := 0
	if len(o.Delete) > 0 {
		modes++
	}
	if o.Create != "" {
		modes++
	}
	if o.Rename[0] != "" || o.Rename[1] != "" {
		modes++
		if o.Rename[0] == "" || o.Rename[1] == "" {
			return nil, invalidArgf("branch rename needs both old and new names")
		}
	}
	if modes > 1 {
		return nil, invalidArgf("branch delete, create and rename are exclusive")
	}
	switch {
	case len(o.Delete) > 0:
		flag := "-d"
		if o.Force {
			flag = "-D"
		}
		return append([]string{"branch", flag}, o.Delete...), nil
	case o.Create != "":
		args := []string{"branch"}
		if o.Force {
			args = append(args, "-f")
		}
		args = append(args, o.Create)
		if o.StartPoint != "" {
			args = append(args, o.StartPoint)
		}
		return args, nil
	case o.Rename[0] != "":
		flag := "-m"
		if o.Force {
			flag = "-M"
		}
		return []string{"branch", flag, o.Rename[0], o.Rename[1]}, nil
	}
	args := []string{"branch", "--no-color"}
	if o.Verbose {
		args = append(args, "-v", "--no-abbrev")
	}
	if o.All {
		args = append(args, "-a")
	} else if o.Remotes {
		args = append(args, "-r")
	}
	return args, nil
}

type CheckoutOptions struct {
	Branch string
	// NewBranch creates Branch at StartPoint (-b), or resets it when Force is set (-B).
	NewBranch  bool
	StartPoint string
	Force      bool
	Paths      []string
}

func (o CheckoutOptions) args() ([]string, error) {
	if o.Branch == "" && len(o.Paths) == 0 {
		return nil, invalidArgf("checkout needs a branch or paths")
	}
	if o.NewBranch && o.Branch == "" {
		return nil, invalidArgf("checkout -b needs a branch name")
	}
	args := []string{"checkout"}
	switch {
	case o.NewBranch && o.Force:
		args = append(args, "-B", o.Branch)
		if o.StartPoint != "" {
			args = append(args, o.StartPoint)
		}
	case o.NewBranch:
		args = append(args, "-b", o.Branch)
		if o.StartPoint != "" {
			args = append(args, o.StartPoint)
		}
	default:
		if o.Force {
			args = append(args, "-f")
		}
		if o.Branch != "" {
			args = append(args, o.Branch)
		}
	}
	return appendPaths(args, o.Paths), nil
}

type MoveOptions struct {
	Sources     []string
	Destination string
	Force       bool
	DryRun      bool
}

func (o MoveOptions) args() ([]string, error) {
	if len(o.Sources) == 0 || o.Destination == "" {
		return nil, invalidArgf("mv needs at least one source and a destination")
	}
	args := []string{"mv", "-v"}
	if o.Force {
		args = append(args, "-f")
	}
	if o.DryRun {
		args = append(args, "-n")
	}
	args = append(args, "--")
	args = append(args, o.Sources...)
	return append(args, o.Destination), nil
}

type RemoveOptions struct {
	Paths     []string
	Cached    bool
	Recursive bool
	Force     bool
	DryRun    bool
}

func (o RemoveOptions) args() ([]string, error) {
	if len(o.Paths) == 0 {
		return nil, invalidArgf("rm needs at least one path")
	}
	args := []string{"rm"}
	if o.Cached {
		args = append(args, "--cached")
	}
	if o.Recursive {
		args = append(args, "-r")
	}
	if o.Force {
		args = append(args, "-f")
	}
	if o.DryRun {
		args = append(args, "-n")
	}
	return appendPaths(args, o.Paths), nil
}

type ResetMode uint8

const (
	ResetDefault ResetMode = iota
	ResetSoft
	ResetMixed
	ResetHard
	ResetMerge
	ResetKeep
)

func (m ResetMode) flag() string {
	switch m {
	case ResetSoft:
		return "--soft"
	case ResetMixed:
		return "--mixed"
	case ResetHard:
		return "--hard"
	case ResetMerge:
		return "--merge"
	case ResetKeep:
		return "--keep"
	default:
		return ""
	}
}

type ResetOptions struct {
	Mode   ResetMode
	Commit string
	Paths  []string
}

func (o ResetOptions) args() ([]string, error) {
	if o.Mode != ResetDefault && o.Mode != ResetMixed && len(o.Paths) > 0 {
		return nil, invalidArgf("reset %s cannot be combined with paths", o.Mode.flag())
	}
	args := []string{"reset"}
	if flag := o.Mode.flag(); flag != "" {
		args = append(args, flag)
	}
	if o.Commit != "" {
		args = append(args, o.Commit)
	}
	return appendPaths(args, o.Paths), nil
}

type AddOptions struct {
	Paths []string
	// All stages every change in the working tree (-A).
	All    bool
	Update bool
	Force  bool
	DryRun bool
}

func (o AddOptions) args() ([]string, error) {
	if len(o.Paths) == 0 && !o.All && !o.Update {
		return nil, invalidArgf("add needs paths, All or Update")
	}
	args := []string{"add", "-v"}
	if o.All {
		args = append(args, "-A")
	}
	if o.Update {
		args = append(args, "-u")
	}
	if o.Force {
		args = append(args, "-f")
	}
	if o.DryRun {
		args = append(args, "-n")
	}
	return appendPaths(args, o.Paths), nil
}

func appendPaths(args []string, paths []string) []string {
	if len(paths) == 0 {
		return args
	}
	args = append(args, "--")
	return append(args, paths...)
}
