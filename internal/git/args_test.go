package git

import (
	"errors"
	"reflect"
	"testing"
)

type argsBuilder interface {
	args() ([]string, error)
}

func TestOptionArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts argsBuilder
		want []string
	}{
		{"status", StatusOptions{}, []string{"status"}},
		{"log range", LogOptions{Revision: "main~3..main", Paths: []string{"docs"}, Skip: 1, Author: "ann", FirstParent: true},
			[]string{"log", "--no-color", "--pretty=fuller", "--parents", "--decorate=short", "--first-parent", "--skip=1", "--author=ann", "main~3..main", "--", "docs"}},
		{"log dates", LogOptions{Since: "2 weeks ago", Until: "yesterday"},
			[]string{"log", "--no-color", "--pretty=fuller", "--parents", "--decorate=short", "--since=2 weeks ago", "--until=yesterday"}},
		{"commit", CommitOptions{Message: "msg", All: true, Signoff: true},
			[]string{"commit", "-m", "msg", "-a", "--signoff"}},
		{"commit paths", CommitOptions{Message: "msg", Amend: true, Paths: []string{"a"}},
			[]string{"commit", "-m", "msg", "--amend", "--", "a"}},
		{"branch list", BranchOptions{All: true}, []string{"branch", "--no-color", "-a"}},
		{"branch remotes", BranchOptions{Remotes: true}, []string{"branch", "--no-color", "-r"}},
		{"branch delete", BranchOptions{Delete: []string{"a", "b"}}, []string{"branch", "-d", "a", "b"}},
		{"branch force delete", BranchOptions{Delete: []string{"a"}, Force: true}, []string{"branch", "-D", "a"}},
		{"branch create", BranchOptions{Create: "x", StartPoint: "main"}, []string{"branch", "x", "main"}},
		{"branch rename", BranchOptions{Rename: [2]string{"a", "b"}}, []string{"branch", "-m", "a", "b"}},
		{"checkout", CheckoutOptions{Branch: "main", Force: true}, []string{"checkout", "-f", "main"}},
		{"checkout reset", CheckoutOptions{Branch: "t", NewBranch: true, Force: true}, []string{"checkout", "-B", "t"}},
		{"checkout paths", CheckoutOptions{Paths: []string{"f"}}, []string{"checkout", "--", "f"}},
		{"mv", MoveOptions{Sources: []string{"a", "b"}, Destination: "dir", Force: true},
			[]string{"mv", "-v", "-f", "--", "a", "b", "dir"}},
		{"rm", RemoveOptions{Paths: []string{"d"}, Cached: true, Recursive: true},
			[]string{"rm", "--cached", "-r", "--", "d"}},
		{"reset soft", ResetOptions{Mode: ResetSoft, Commit: "HEAD~1"}, []string{"reset", "--soft", "HEAD~1"}},
		{"reset paths", ResetOptions{Paths: []string{"a"}}, []string{"reset", "--", "a"}},
		{"add", AddOptions{Paths: []string{"a"}, Force: true}, []string{"add", "-v", "-f", "--", "a"}},
		{"add all", AddOptions{All: true, DryRun: true}, []string{"add", "-v", "-A", "-n"}},
	}
	for _, tt := range tests {
		got, err := tt.opts.args()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: args = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOptionArgs_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts argsBuilder
	}{
		{"log option revision", LogOptions{Revision: "--all"}},
		{"commit all with paths", CommitOptions{Message: "m", All: true, Paths: []string{"a"}}},
		{"branch half rename", BranchOptions{Rename: [2]string{"a", ""}}},
		{"checkout nothing", CheckoutOptions{}},
		{"checkout new without name", CheckoutOptions{NewBranch: true, Paths: []string{"a"}}},
		{"add nothing", AddOptions{}},
	}
	for _, tt := range tests {
		if _, err := tt.opts.args(); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: err = %v, want ErrInvalidArgument", tt.name, err)
		}
	}
}
