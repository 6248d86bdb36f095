package git

import (
	"fmt"
	"strconv"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// Outcome is embedded in every response.
type Outcome struct {
	// ExitCode of the git process. A non-zero code with no error line in the
	// output still produces a response.
	ExitCode int `json:"exit_code" yaml:"exit_code"`
}

func (o *Outcome) setExitCode(code int) { o.ExitCode = code }

// ChangeKind is the single letter status git prints for a changed path.
type ChangeKind byte

const (
	ChangeUnknown    ChangeKind = 0
	ChangeAdded      ChangeKind = 'A'
	ChangeCopied     ChangeKind = 'C'
	ChangeDeleted    ChangeKind = 'D'
	ChangeModified   ChangeKind = 'M'
	ChangeRenamed    ChangeKind = 'R'
	ChangeTypeChange ChangeKind = 'T'
	ChangeUnmerged   ChangeKind = 'U'
)

func parseChangeKind(code byte) ChangeKind {
	switch ck := ChangeKind(code); ck {
	case ChangeAdded, ChangeCopied, ChangeDeleted, ChangeModified, ChangeRenamed, ChangeTypeChange, ChangeUnmerged:
		return ck
	default:
		return ChangeUnknown
	}
}

func (ck ChangeKind) String() string {
	switch ck {
	case ChangeAdded:
		return "added"
	case ChangeCopied:
		return "copied"
	case ChangeDeleted:
		return "deleted"
	case ChangeModified:
		return "modified"
	case ChangeRenamed:
		return "renamed"
	case ChangeTypeChange:
		return "typechange"
	case ChangeUnmerged:
		return "unmerged"
	default:
		return "unknown"
	}
}

func (ck ChangeKind) MarshalText() ([]byte, error) {
	return []byte(ck.String()), nil
}

func (ck *ChangeKind) UnmarshalText(text []byte) error {
	for _, k := range []ChangeKind{
		ChangeAdded, ChangeCopied, ChangeDeleted, ChangeModified,
		ChangeRenamed, ChangeTypeChange, ChangeUnmerged, ChangeUnknown,
	} {
		if k.String() == string(text) {
			*ck = k
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", text)
}

// Mode is a git file mode as printed in raw diff and commit summaries ("100644").
type Mode filemode.FileMode

func parseMode(s string) (Mode, error) {
	m, err := filemode.New(s)
	if err != nil {
		return 0, err
	}
	return Mode(m), nil
}

func (m Mode) FileMode() filemode.FileMode { return filemode.FileMode(m) }

func (m Mode) String() string {
	return fmt.Sprintf("%06o", uint32(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := parseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LineCount is a per-file added/deleted line count from a numstat line.
type LineCount int

const (
	// LinesUnset marks a count no numstat line has been matched to yet.
	LinesUnset LineCount = -1
	// LinesBinary is what git reports as "-": the file is binary.
	LinesBinary LineCount = -2
)

func parseLineCount(s string) (LineCount, bool) {
	if s == "-" {
		return LinesBinary, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return LinesUnset, false
	}
	return LineCount(n), true
}

func (n LineCount) String() string {
	switch n {
	case LinesUnset:
		return "unset"
	case LinesBinary:
		return "-"
	default:
		return strconv.Itoa(int(n))
	}
}

// CommitFile is one file entry of a log record, built from a raw diff line and
// completed by the numstat line git emits for it later.
type CommitFile struct {
	OldMode Mode       `json:"old_mode" yaml:"old_mode"`
	NewMode Mode       `json:"new_mode" yaml:"new_mode"`
	OldBlob string     `json:"old_blob" yaml:"old_blob"`
	NewBlob string     `json:"new_blob" yaml:"new_blob"`
	Kind    ChangeKind `json:"kind" yaml:"kind"`
	// Score is the similarity percentage of a copy or rename.
	Score      int    `json:"score,omitempty" yaml:"score,omitempty"`
	OriginName string `json:"origin_name,omitempty" yaml:"origin_name,omitempty"`
	Path       string `json:"path" yaml:"path"`

	LinesAdded   LineCount `json:"lines_added" yaml:"lines_added"`
	LinesDeleted LineCount `json:"lines_deleted" yaml:"lines_deleted"`
}

func newCommitFile() CommitFile {
	return CommitFile{LinesAdded: LinesUnset, LinesDeleted: LinesUnset}
}

// SetLinesAdded records the added count. Counts are write-once.
func (f *CommitFile) SetLinesAdded(n LineCount) error {
	return setOnce(&f.LinesAdded, n, "lines added", f.Path)
}

// SetLinesDeleted records the deleted count. Counts are write-once.
func (f *CommitFile) SetLinesDeleted(n LineCount) error {
	return setOnce(&f.LinesDeleted, n, "lines deleted", f.Path)
}

func setOnce(dst *LineCount, n LineCount, what, path string) error {
	if *dst != LinesUnset {
		return invariantf("%s of %q already set to %s", what, path, *dst)
	}
	if n < 0 && n != LinesBinary {
		return invariantf("%s of %q set to invalid count %d", what, path, int(n))
	}
	*dst = n
	return nil
}

// Commit is one record of git log output.
type Commit struct {
	Sha string `json:"sha" yaml:"sha"`
	// ParentSha is the first parent.
	ParentSha string `json:"parent_sha,omitempty" yaml:"parent_sha,omitempty"`
	// MergeParents are the remaining parents in the order git printed them.
	MergeParents []string `json:"merge_parents,omitempty" yaml:"merge_parents,omitempty"`
	// MergeOriginSha is set from a "(from <sha>)" annotation.
	MergeOriginSha string `json:"merge_origin_sha,omitempty" yaml:"merge_origin_sha,omitempty"`

	Author     string `json:"author" yaml:"author"`
	AuthorDate string `json:"author_date" yaml:"author_date"`
	Committer  string `json:"committer,omitempty" yaml:"committer,omitempty"`
	CommitDate string `json:"commit_date,omitempty" yaml:"commit_date,omitempty"`
	Message    string `json:"message" yaml:"message"`

	Tags  []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Files []CommitFile `json:"files,omitempty" yaml:"files,omitempty"`
}

// Branch is one line of git branch output.
type Branch struct {
	Ref         string `json:"ref" yaml:"ref"`
	HeadSha     string `json:"head_sha,omitempty" yaml:"head_sha,omitempty"`
	HeadComment string `json:"head_comment,omitempty" yaml:"head_comment,omitempty"`
	Current     bool   `json:"current" yaml:"current"`
}
