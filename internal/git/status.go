package git

import "strings"

// StatusResponse holds the paths of git status output, each filed under the
// section it appeared in. Lists keep duplicates and emission order.
type StatusResponse struct {
	Outcome `yaml:",inline"`

	Branch string `json:"branch" yaml:"branch"`

	Untracked          []string `json:"untracked" yaml:"untracked"`
	NewToCommit        []string `json:"new_to_commit" yaml:"new_to_commit"`
	DeletedToCommit    []string `json:"deleted_to_commit" yaml:"deleted_to_commit"`
	ModifiedToCommit   []string `json:"modified_to_commit" yaml:"modified_to_commit"`
	RenamedToCommit    []string `json:"renamed_to_commit" yaml:"renamed_to_commit"`
	DeletedNotUpdated  []string `json:"deleted_not_updated" yaml:"deleted_not_updated"`
	ModifiedNotUpdated []string `json:"modified_not_updated" yaml:"modified_not_updated"`

	// Message collects free text lines such as "nothing to commit", newline-joined.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (*StatusResponse) Command() Command { return CommandStatus }

type statusSection uint8

const (
	sectionNone statusSection = iota
	sectionStaged
	sectionNotUpdated
	sectionUntracked
)

type statusEntry uint8

const (
	entryNone statusEntry = iota
	entryNew
	entryDeleted
	entryModified
	entryRenamed
	entryPath
)

var statusEntryPrefixes = []struct {
	prefix string
	entry  statusEntry
}{
	{"new file:", entryNew},
	{"deleted:", entryDeleted},
	{"modified:", entryModified},
	{"typechange:", entryModified},
	{"renamed:", entryRenamed},
}

type statusParser struct {
	errorLog
	section statusSection
	resp    StatusResponse
}

func newStatusParser() *statusParser {
	return &statusParser{}
}

func (p *statusParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	// Legacy output prefixes every line with "#"; current output indents entries
	// with a tab instead.
	commented := strings.HasPrefix(text, "#")
	indented := commented || strings.HasPrefix(text, "\t") || strings.HasPrefix(text, " ")
	content := strings.TrimSpace(strings.TrimPrefix(text, "#"))

	if line.Number == 1 {
		if fields := strings.Fields(content); len(fields) > 0 {
			p.resp.Branch = fields[len(fields)-1]
		}
		return nil
	}
	if content == "" || strings.HasPrefix(content, "(") {
		return nil
	}
	if section, ok := statusHeader(content); ok {
		// Sections only move forward.
		if section > p.section {
			p.section = section
		}
		return nil
	}

	entry, path := statusEntryOf(content, indented)
	if entry == entryNone {
		if !commented && !indented {
			p.appendMessage(content)
		}
		return nil
	}
	if list := p.listFor(entry); list != nil {
		*list = append(*list, path)
	}
	return nil
}

func statusHeader(content string) (statusSection, bool) {
	switch {
	case strings.Contains(content, "Changes to be committed"):
		return sectionStaged, true
	case strings.Contains(content, "Changed but not updated"),
		strings.Contains(content, "Changes not staged for commit"):
		return sectionNotUpdated, true
	case strings.Contains(content, "Untracked files"):
		return sectionUntracked, true
	}
	return sectionNone, false
}

func statusEntryOf(content string, indented bool) (statusEntry, string) {
	for _, e := range statusEntryPrefixes {
		if rest, ok := strings.CutPrefix(content, e.prefix); ok {
			path := strings.TrimSpace(rest)
			if e.entry == entryRenamed {
				if _, to, found := strings.Cut(path, " -> "); found {
					path = strings.TrimSpace(to)
				}
			}
			return e.entry, path
		}
	}
	if indented {
		return entryPath, content
	}
	return entryNone, ""
}

func (p *statusParser) listFor(entry statusEntry) *[]string {
	r := &p.resp
	switch p.section {
	case sectionStaged:
		switch entry {
		case entryNew:
			return &r.NewToCommit
		case entryDeleted:
			return &r.DeletedToCommit
		case entryModified:
			return &r.ModifiedToCommit
		case entryRenamed:
			return &r.RenamedToCommit
		}
	case sectionNotUpdated:
		switch entry {
		case entryDeleted:
			return &r.DeletedNotUpdated
		case entryModified:
			return &r.ModifiedNotUpdated
		}
	case sectionUntracked:
		return &r.Untracked
	}
	return nil
}

func (p *statusParser) appendMessage(text string) {
	if p.resp.Message != "" {
		p.resp.Message += "\n"
	}
	p.resp.Message += text
}

func (p *statusParser) response() Response {
	resp := p.resp
	for _, list := range []*[]string{
		&resp.Untracked, &resp.NewToCommit, &resp.DeletedToCommit, &resp.ModifiedToCommit,
		&resp.RenamedToCommit, &resp.DeletedNotUpdated, &resp.ModifiedNotUpdated,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	return &resp
}
