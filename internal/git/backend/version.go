package backend

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// Oldest git whose porcelain output the parsers have been checked against.
var minGitVersion = semver.MustParse("1.7.0")

func MinGitVersion() string {
	return minGitVersion.String()
}

func parseGitVersionOutput(out string) (*semver.Version, bool) {
	s := strings.TrimSpace(out)
	if s == "" {
		return nil, false
	}
	// Common formats:
	// - "git version 2.44.0"
	// - "git version 2.39.3 (Apple Git-146)"
	// - "git version 2.39.3.windows.1"
	if idx := strings.Index(s, "git version"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("git version"):])
	}
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return nil, false
	}
	s = s[start:]
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	parts := strings.Split(strings.Trim(s[:end], "."), ".")
	if len(parts) < 2 {
		return nil, false
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, false
	}
	return v, true
}

func validateGitVersionOutput(out string) error {
	got, ok := parseGitVersionOutput(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if got.LessThan(minGitVersion) {
		return fmt.Errorf("git %s is too old; gitout requires git >= %s", got, minGitVersion)
	}
	return nil
}

type gitVersionInfo struct {
	out string
	err error
}

var (
	versionMu    sync.Mutex
	versionCache = map[string]gitVersionInfo{}
)

func gitVersionInfoCached(git string) gitVersionInfo {
	versionMu.Lock()
	defer versionMu.Unlock()
	if info, ok := versionCache[git]; ok {
		return info
	}
	var info gitVersionInfo
	outBytes, err := exec.Command(git, "--version").CombinedOutput()
	info.out = strings.TrimSpace(string(outBytes))
	switch {
	case err != nil && info.out != "":
		info.err = fmt.Errorf("git --version: %v: %s", err, info.out)
	case err != nil:
		info.err = fmt.Errorf("git --version: %w", err)
	default:
		info.err = validateGitVersionOutput(info.out)
	}
	versionCache[git] = info
	return info
}

// GitVersion returns the raw "git --version" output of the given executable.
func GitVersion(git string) (string, error) {
	info := gitVersionInfoCached(git)
	return info.out, info.err
}

func ensureMinGitVersion(git string) error {
	return gitVersionInfoCached(git).err
}
