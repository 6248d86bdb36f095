package git

import "strings"

// RemoveResponse holds the output of git rm.
type RemoveResponse struct {
	Outcome `yaml:",inline"`

	Removed []string `json:"removed" yaml:"removed"`
}

func (*RemoveResponse) Command() Command { return CommandRemove }

type removeParser struct {
	errorLog
	resp RemoveResponse
}

func newRemoveParser() *removeParser {
	return &removeParser{}
}

func (p *removeParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	if !strings.HasPrefix(line.Text, "rm '") {
		return nil
	}
	if path, ok := quotedPath(line.Text); ok {
		p.resp.Removed = append(p.resp.Removed, path)
	}
	return nil
}

// quotedPath returns the text between the first and the last single quote.
func quotedPath(text string) (string, bool) {
	first := strings.IndexByte(text, '\'')
	last := strings.LastIndexByte(text, '\'')
	if first < 0 || last <= first {
		return "", false
	}
	return text[first+1 : last], true
}

func (p *removeParser) response() Response {
	resp := p.resp
	if resp.Removed == nil {
		resp.Removed = []string{}
	}
	return &resp
}
