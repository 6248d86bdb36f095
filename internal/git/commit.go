package git

import (
	"regexp"
	"strconv"
	"strings"
)

// CommitResponse summarises the output of git commit.
type CommitResponse struct {
	Outcome `yaml:",inline"`

	ShortHash    string `json:"short_hash" yaml:"short_hash"`
	ShortComment string `json:"short_comment" yaml:"short_comment"`
	// Branch is only known from the bracketed summary of newer git versions.
	Branch  string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Initial bool   `json:"initial" yaml:"initial"`

	FilesChanged  int `json:"files_changed" yaml:"files_changed"`
	LinesInserted int `json:"lines_inserted" yaml:"lines_inserted"`
	LinesDeleted  int `json:"lines_deleted" yaml:"lines_deleted"`

	Added       []CommitModeEntry  `json:"added,omitempty" yaml:"added,omitempty"`
	Deleted     []CommitModeEntry  `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Copied      []CommitCopyEntry  `json:"copied,omitempty" yaml:"copied,omitempty"`
	Renamed     []CommitCopyEntry  `json:"renamed,omitempty" yaml:"renamed,omitempty"`
	ModeChanged []CommitModeChange `json:"mode_changed,omitempty" yaml:"mode_changed,omitempty"`
}

func (*CommitResponse) Command() Command { return CommandCommit }

// CommitModeEntry is a " create mode" or " delete mode" trailer.
type CommitModeEntry struct {
	Path string `json:"path" yaml:"path"`
	Mode Mode   `json:"mode" yaml:"mode"`
}

// CommitCopyEntry is a " copy" or " rename" trailer.
type CommitCopyEntry struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Percentage  int    `json:"percentage" yaml:"percentage"`
}

// CommitModeChange is a " mode change" trailer.
type CommitModeChange struct {
	Path    string `json:"path" yaml:"path"`
	OldMode Mode   `json:"old_mode" yaml:"old_mode"`
	NewMode Mode   `json:"new_mode" yaml:"new_mode"`
}

var (
	// Created commit c18c00f: a change to test committing
	legacyCommitSummary = regexp.MustCompile(`^Created (initial )?commit ([0-9a-fA-F]+): (.*)$`)
	// [master (root-commit) c18c00f] a change to test committing
	bracketCommitSummary = regexp.MustCompile(`^\[(.*?) (?:(\(root-commit\)) )?([0-9a-fA-F]{4,})\] (.*)$`)
)

type commitParser struct {
	errorLog
	statsSeen bool
	resp      CommitResponse
}

func newCommitParser() *commitParser {
	return &commitParser{}
}

func (p *commitParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	switch line.Number {
	case 1:
		if !p.parseSummary(line.Text) {
			return invariantf("commit summary line %q", line.Text)
		}
		return nil
	case 2:
		if strings.Contains(line.Text, " changed") {
			return p.parseStats(line.Text)
		}
	}
	// --amend and --author print " Date:" or " Author:" ahead of the stats line.
	if !p.statsSeen && isStatsLine(line.Text) {
		return p.parseStats(line.Text)
	}
	return p.parseTrailer(line.Text)
}

func isStatsLine(text string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	if _, err := strconv.Atoi(first); err != nil {
		return false
	}
	return strings.Contains(text, " changed")
}

func (p *commitParser) parseSummary(text string) bool {
	if m := legacyCommitSummary.FindStringSubmatch(text); m != nil {
		p.resp.Initial = m[1] != ""
		p.resp.ShortHash = m[2]
		p.resp.ShortComment = m[3]
		return true
	}
	if m := bracketCommitSummary.FindStringSubmatch(text); m != nil {
		p.resp.Branch = m[1]
		p.resp.Initial = m[2] != ""
		p.resp.ShortHash = m[3]
		p.resp.ShortComment = m[4]
		return true
	}
	return false
}

// parseStats reads " 1 files changed, 6 insertions(+), 1 deletions(-)". Either
// count after the first may be missing.
func (p *commitParser) parseStats(text string) error {
	p.statsSeen = true
	for i, part := range strings.Split(strings.TrimSpace(text), ",") {
		fields := strings.Fields(part)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return invariantf("commit stats %q: count %q is not a number", text, fields[0])
		}
		switch {
		case i == 0:
			p.resp.FilesChanged = n
		case strings.HasPrefix(fields[1], "insertion"):
			p.resp.LinesInserted = n
		case strings.HasPrefix(fields[1], "deletion"):
			p.resp.LinesDeleted = n
		}
	}
	return nil
}

func (p *commitParser) parseTrailer(text string) error {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "create mode "):
		entry, err := parseModeEntry(strings.TrimPrefix(trimmed, "create mode "))
		if err != nil {
			return err
		}
		p.resp.Added = append(p.resp.Added, entry)
	case strings.HasPrefix(trimmed, "delete mode "):
		entry, err := parseModeEntry(strings.TrimPrefix(trimmed, "delete mode "))
		if err != nil {
			return err
		}
		p.resp.Deleted = append(p.resp.Deleted, entry)
	case strings.HasPrefix(trimmed, "copy "):
		p.resp.Copied = append(p.resp.Copied, parseCopyEntry(strings.TrimPrefix(trimmed, "copy ")))
	case strings.HasPrefix(trimmed, "rename "):
		p.resp.Renamed = append(p.resp.Renamed, parseCopyEntry(strings.TrimPrefix(trimmed, "rename ")))
	case strings.HasPrefix(trimmed, "mode change "):
		change, ok := parseModeChange(strings.TrimPrefix(trimmed, "mode change "))
		if ok {
			p.resp.ModeChanged = append(p.resp.ModeChanged, change)
		}
	}
	return nil
}

// parseModeEntry reads "<mode> <path>".
func parseModeEntry(s string) (CommitModeEntry, error) {
	modeText, path, ok := strings.Cut(s, " ")
	if !ok {
		return CommitModeEntry{}, invariantf("mode entry %q has no path", s)
	}
	mode, err := parseMode(modeText)
	if err != nil {
		return CommitModeEntry{}, invariantf("mode entry %q: %v", s, err)
	}
	return CommitModeEntry{Path: path, Mode: mode}, nil
}

// parseModeChange reads "100644 => 100755 <path>".
func parseModeChange(s string) (CommitModeChange, bool) {
	fields := strings.SplitN(s, " ", 4)
	if len(fields) != 4 || fields[1] != "=>" {
		return CommitModeChange{}, false
	}
	oldMode, err := parseMode(fields[0])
	if err != nil {
		return CommitModeChange{}, false
	}
	newMode, err := parseMode(fields[2])
	if err != nil {
		return CommitModeChange{}, false
	}
	return CommitModeChange{Path: fields[3], OldMode: oldMode, NewMode: newMode}, true
}

// parseCopyEntry reads "a/b => a/c (100%)" or "a/{old => new} (100%)".
func parseCopyEntry(s string) CommitCopyEntry {
	var entry CommitCopyEntry
	if idx := strings.LastIndex(s, " ("); idx >= 0 && strings.HasSuffix(s, "%)") {
		// A malformed percentage only loses the similarity score.
		entry.Percentage, _ = strconv.Atoi(s[idx+2 : len(s)-2])
		s = s[:idx]
	}
	entry.Source, entry.Destination = splitRenamePaths(s)
	return entry
}

func splitRenamePaths(s string) (string, string) {
	open := strings.Index(s, "{")
	closing := strings.LastIndex(s, "}")
	if open >= 0 && closing > open && strings.Contains(s[open:closing], " => ") {
		prefix, suffix := s[:open], s[closing+1:]
		from, to, _ := strings.Cut(s[open+1:closing], " => ")
		return joinRenamePath(prefix, from, suffix), joinRenamePath(prefix, to, suffix)
	}
	from, to, ok := strings.Cut(s, " => ")
	if !ok {
		return s, s
	}
	return from, to
}

func joinRenamePath(prefix, middle, suffix string) string {
	// "dir/{ => sub}/file" leaves an empty side, which must not produce "dir//file".
	if middle == "" && strings.HasSuffix(prefix, "/") && strings.HasPrefix(suffix, "/") {
		suffix = suffix[1:]
	}
	return prefix + middle + suffix
}

func (p *commitParser) response() Response {
	resp := p.resp
	return &resp
}
