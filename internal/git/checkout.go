package git

import "strings"

// CheckoutResponse holds the output of git checkout.
type CheckoutResponse struct {
	Outcome `yaml:",inline"`

	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`
	NewBranch bool   `json:"new_branch" yaml:"new_branch"`

	Added    []string `json:"added,omitempty" yaml:"added,omitempty"`
	Deleted  []string `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Modified []string `json:"modified,omitempty" yaml:"modified,omitempty"`
}

func (*CheckoutResponse) Command() Command { return CommandCheckout }

var checkoutBranchPrefixes = []struct {
	prefix    string
	newBranch bool
}{
	{"Switched to a new branch ", true},
	{"Switched to and reset branch ", false},
	{"Switched to branch ", false},
	{"Already on ", false},
}

type checkoutParser struct {
	errorLog
	resp CheckoutResponse
}

func newCheckoutParser() *checkoutParser {
	return &checkoutParser{}
}

func (p *checkoutParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	for _, bp := range checkoutBranchPrefixes {
		if rest, ok := strings.CutPrefix(text, bp.prefix); ok {
			p.resp.Branch = unquote(strings.TrimSpace(rest))
			p.resp.NewBranch = bp.newBranch
			return nil
		}
	}
	kind, path, ok := fileStatusLine(text)
	if !ok {
		return nil
	}
	switch kind {
	case ChangeAdded:
		p.resp.Added = append(p.resp.Added, path)
	case ChangeDeleted:
		p.resp.Deleted = append(p.resp.Deleted, path)
	case ChangeModified:
		p.resp.Modified = append(p.resp.Modified, path)
	}
	return nil
}

// fileStatusLine reads "M <path>" or "M\t<path>" with a single status letter.
func fileStatusLine(text string) (ChangeKind, string, bool) {
	if len(text) < 3 || (text[1] != ' ' && text[1] != '\t') {
		return ChangeUnknown, "", false
	}
	kind := parseChangeKind(text[0])
	if kind == ChangeUnknown {
		return ChangeUnknown, "", false
	}
	path := strings.TrimSpace(text[2:])
	if path == "" {
		return ChangeUnknown, "", false
	}
	return kind, path, true
}

// unquote strips one pair of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (p *checkoutParser) response() Response {
	resp := p.resp
	return &resp
}
