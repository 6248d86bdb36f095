package git

import "strings"

// BranchResponse holds the output of git branch in listing or deletion mode.
type BranchResponse struct {
	Outcome `yaml:",inline"`

	// Branches lists branch names in output order, listed or deleted.
	Branches []string `json:"branches" yaml:"branches"`
	// Records is only filled when listing with -v.
	Records []Branch `json:"records,omitempty" yaml:"records,omitempty"`
	Current string   `json:"current,omitempty" yaml:"current,omitempty"`
	// Message is "Deleted branch" once any branch was deleted.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (*BranchResponse) Command() Command { return CommandBranch }

const deletedBranchMessage = "Deleted branch"

type branchParser struct {
	errorLog
	verbose bool
	resp    BranchResponse
}

func newBranchParser(verbose bool) *branchParser {
	return &branchParser{verbose: verbose}
}

func (p *branchParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := strings.TrimRight(line.Text, " ")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if name, ok := deletedBranchName(text); ok {
		p.resp.Branches = append(p.resp.Branches, name)
		p.resp.Message = deletedBranchMessage
		return nil
	}
	if isBranchNoise(text) {
		return nil
	}
	p.parseListing(text)
	return nil
}

// deletedBranchName reads "Deleted branch x." and "Deleted branch x (was abc1234).".
func deletedBranchName(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "Deleted branch ")
	if !ok {
		rest, ok = strings.CutPrefix(text, "Deleted remote-tracking branch ")
	}
	if !ok {
		return "", false
	}
	rest = strings.TrimSuffix(rest, ".")
	if i := strings.Index(rest, " (was "); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest), true
}

func isBranchNoise(text string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.HasSuffix(first, ":") || strings.Contains(text, " set up to track ")
}

func (p *branchParser) parseListing(text string) {
	current := false
	rest := text
	if after, ok := strings.CutPrefix(rest, "*"); ok {
		current = true
		rest = after
	} else if after, ok := strings.CutPrefix(rest, "+"); ok {
		// Checked out in another worktree.
		rest = after
	}
	rest = strings.TrimSpace(rest)

	var name string
	if strings.HasPrefix(rest, "(") {
		// "(HEAD detached at abc1234)" or "(no branch)"
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			end = len(rest) - 1
		}
		name, rest = rest[:end+1], strings.TrimSpace(rest[end+1:])
	} else {
		name, rest, _ = strings.Cut(rest, " ")
		rest = strings.TrimSpace(rest)
	}
	if name == "" {
		return
	}
	p.resp.Branches = append(p.resp.Branches, name)
	if current {
		p.resp.Current = name
	}
	if !p.verbose {
		return
	}
	record := Branch{Ref: name, Current: current}
	sha, comment, _ := strings.Cut(rest, " ")
	if sha == "->" {
		record.HeadComment = rest
	} else {
		record.HeadSha = sha
		record.HeadComment = strings.TrimSpace(comment)
	}
	p.resp.Records = append(p.resp.Records, record)
}

func (p *branchParser) response() Response {
	resp := p.resp
	if resp.Branches == nil {
		resp.Branches = []string{}
	}
	return &resp
}
