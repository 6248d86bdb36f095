package git

import "strings"

// AddResponse holds the output of git add -v.
type AddResponse struct {
	Outcome `yaml:",inline"`

	Added []string `json:"added" yaml:"added"`
	// Removed is filled by "git add -A" for paths gone from the working tree.
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func (*AddResponse) Command() Command { return CommandAdd }

type addParser struct {
	errorLog
	resp AddResponse
}

func newAddParser() *addParser {
	return &addParser{}
}

func (p *addParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	switch {
	case strings.HasPrefix(text, "add '"):
		if path, ok := quotedPath(text); ok {
			p.resp.Added = append(p.resp.Added, path)
		}
	case strings.HasPrefix(text, "remove '"):
		if path, ok := quotedPath(text); ok {
			p.resp.Removed = append(p.resp.Removed, path)
		}
	}
	return nil
}

func (p *addParser) response() Response {
	resp := p.resp
	if resp.Added == nil {
		resp.Added = []string{}
	}
	return &resp
}
