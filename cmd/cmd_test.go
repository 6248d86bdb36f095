package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thiagokokada/gitout/internal/git"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestParse_StdinJSON(t *testing.T) {
	out, err := runCLI(t,
		"Created commit c18c00f: a change to test committing\n 1 files changed, 6 insertions(+), 1 deletions(-)\n",
		"parse", "commit")
	require.NoError(t, err)

	var got git.CommitResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "c18c00f", got.ShortHash)
	require.Equal(t, 6, got.LinesInserted)
	require.Contains(t, out, `"exit_code": 0`)
}

func TestParse_FileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.txt")
	require.NoError(t, os.WriteFile(path, []byte("  doc-refactor 2a66ab6 Committing a document\n* master 9580c01 Tip\n"), 0o644))

	out, err := runCLI(t, "", "--format", "yaml", "parse", "branch", "--verbose-branches", path)
	require.NoError(t, err)

	var got struct {
		Branches []string `yaml:"branches"`
		Current  string   `yaml:"current"`
		Records  []struct {
			Ref     string `yaml:"ref"`
			HeadSha string `yaml:"head_sha"`
		} `yaml:"records"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"doc-refactor", "master"}, got.Branches)
	require.Equal(t, "master", got.Current)
	require.Len(t, got.Records, 2)
	require.Equal(t, "2a66ab6", got.Records[0].HeadSha)
}

func TestParse_LogModesAsText(t *testing.T) {
	in := strings.Join([]string{
		"commit 9580c01f2d2b5a8a3c9a6b5b5d3f4e2a1b0c9d8e",
		":100644 100755 f79b1a8 575c2d4 M\trun.sh",
		"1\t1\trun.sh",
	}, "\n")
	out, err := runCLI(t, in, "parse", "log")
	require.NoError(t, err)
	require.Contains(t, out, `"old_mode": "100644"`)
	require.Contains(t, out, `"new_mode": "100755"`)
	require.Contains(t, out, `"kind": "modified"`)
}

func TestParse_CommandError(t *testing.T) {
	_, err := runCLI(t, "fatal: not a git repository\n", "parse", "status")
	require.ErrorIs(t, err, git.ErrCommandFailed)
	require.Contains(t, err.Error(), "409000")
	require.Contains(t, err.Error(), "line1=[fatal: not a git repository]")
}

func TestParse_UnknownCommand(t *testing.T) {
	_, err := runCLI(t, "", "parse", "rebase")
	require.ErrorIs(t, err, git.ErrInvalidArgument)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runCLI(t, "", "--format", "xml", "parse", "rm")
	require.ErrorContains(t, err, "format")
}

func TestConfigFileSelectsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0o644))

	out, err := runCLI(t, "rm 'a.txt'\n", "--config", path, "parse", "rm")
	require.NoError(t, err)
	var got git.RemoveResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"a.txt"}, got.Removed)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "gitout "), "output %q", out)
	require.Contains(t, out, "minimum "+git.MinGitVersion())
}

func TestStatus_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	dir := t.TempDir()
	require.NoError(t, exec.Command("git", "init", "-q", dir).Run())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x\n"), 0o644))

	out, err := runCLI(t, "", "-C", dir, "status")
	require.NoError(t, err)
	var got git.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"new.txt"}, got.Untracked)
}
