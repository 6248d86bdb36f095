package git

import gitbackend "github.com/thiagokokada/gitout/internal/git/backend"

// GitVersion reports the version string of the git executable named by c.
func (c *Client) GitVersion() (string, error) {
	return gitbackend.GitVersion(c.cfg.Git)
}

// MinGitVersion is the oldest git release the client accepts.
func MinGitVersion() string {
	return gitbackend.MinGitVersion()
}
