package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

// newRepoClient creates an empty repository with go-git and a Client running the
// real git executable inside it.
func newRepoClient(t *testing.T) (*Client, *gogit.Repository, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_AUTHOR_NAME", "Gitout Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Gitout Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	c, err := New(Config{Dir: dir})
	if err != nil {
		t.Skipf("git not usable: %v", err)
	}
	return c, repo, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestClient_RealGitWorkflow(t *testing.T) {
	c, repo, dir := newRepoClient(t)
	ctx := context.Background()

	writeFile(t, dir, "a.txt", "one\ntwo\n")
	writeFile(t, dir, "docs/readme.md", "hello\n")

	added, err := c.Add(ctx, AddOptions{Paths: []string{"a.txt", "docs"}})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a.txt", "docs/readme.md"}, added.Added)

	status, err := c.Status(ctx, StatusOptions{})
	require.NoError(t, err)
	require.Equal(t, "master", status.Branch)
	require.ElementsMatch(t, []string{"a.txt", "docs/readme.md"}, status.NewToCommit)

	commit, err := c.Commit(ctx, CommitOptions{Message: "first import"})
	require.NoError(t, err)
	require.Equal(t, "first import", commit.ShortComment)
	require.Equal(t, 2, commit.FilesChanged)
	require.Equal(t, 3, commit.LinesInserted)
	require.Len(t, commit.Added, 2)

	head, err := repo.Head()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(head.Hash().String(), commit.ShortHash),
		"head %s does not start with %s", head.Hash(), commit.ShortHash)

	log, err := c.Log(ctx, LogOptions{Files: true})
	require.NoError(t, err)
	require.Len(t, log.Commits, 1)
	first := log.Commits[0]
	require.Equal(t, head.Hash().String(), first.Sha)
	require.Equal(t, "first import", first.Message)
	require.Len(t, first.Files, 2)
	for _, f := range first.Files {
		require.Equal(t, ChangeAdded, f.Kind)
		require.NotEqual(t, LinesUnset, f.LinesAdded, "file %s", f.Path)
	}

	_, err = c.Branch(ctx, BranchOptions{Create: "topic"})
	require.NoError(t, err)
	branches, err := c.Branch(ctx, BranchOptions{Verbose: true})
	require.NoError(t, err)
	require.Equal(t, []string{"master", "topic"}, branches.Branches)
	require.Equal(t, "master", branches.Current)
	require.Equal(t, head.Hash().String(), branches.Records[0].HeadSha)

	checkout, err := c.Checkout(ctx, CheckoutOptions{Branch: "topic"})
	require.NoError(t, err)
	require.Equal(t, "topic", checkout.Branch)

	moved, err := c.Move(ctx, MoveOptions{Sources: []string{"a.txt"}, Destination: "b.txt"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt"}, moved.Sources)
	require.Equal(t, []string{"b.txt"}, moved.Destinations)

	removed, err := c.Remove(ctx, RemoveOptions{Paths: []string{"docs"}, Recursive: true})
	require.NoError(t, err)
	require.Equal(t, []string{"docs/readme.md"}, removed.Removed)

	reset, err := c.Reset(ctx, ResetOptions{Mode: ResetHard})
	require.NoError(t, err)
	require.Equal(t, "first import", reset.HeadMessage)
	require.True(t, strings.HasPrefix(head.Hash().String(), reset.HeadSha))

	_, err = c.Checkout(ctx, CheckoutOptions{Branch: "master"})
	require.NoError(t, err)
	deleted, err := c.Branch(ctx, BranchOptions{Delete: []string{"topic"}})
	require.NoError(t, err)
	require.Equal(t, []string{"topic"}, deleted.Branches)
	require.Equal(t, "Deleted branch", deleted.Message)
}

func TestClient_RealGitFailure(t *testing.T) {
	c, _, _ := newRepoClient(t)

	_, err := c.Checkout(context.Background(), CheckoutOptions{Branch: "does-not-exist"})
	require.ErrorIs(t, err, ErrCommandFailed)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, CommandCheckout.Code(), cmdErr.Code)
	require.Equal(t, 1, cmdErr.Lines[0].Number)
}
