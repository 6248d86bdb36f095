package git

import "strings"

// MoveResponse holds the output of git mv.
type MoveResponse struct {
	Outcome `yaml:",inline"`

	Sources      []string `json:"sources" yaml:"sources"`
	Destinations []string `json:"destinations" yaml:"destinations"`
	// Comments keeps "Warning: ..." lines; git prints them on successful moves too.
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

func (*MoveResponse) Command() Command { return CommandMove }

type moveParser struct {
	errorLog
	resp MoveResponse
}

func newMoveParser() *moveParser {
	return &moveParser{}
}

func (p *moveParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	switch {
	case strings.HasPrefix(text, "Adding "):
		if path, ok := moveOperand(text, "Adding"); ok {
			p.resp.Destinations = append(p.resp.Destinations, path)
		}
	case strings.HasPrefix(text, "Deleting "):
		if path, ok := moveOperand(text, "Deleting"); ok {
			p.resp.Sources = append(p.resp.Sources, path)
		}
	case strings.HasPrefix(text, "Renaming "):
		// "Renaming <src> to <dst>"
		src, dst, ok := strings.Cut(strings.TrimPrefix(text, "Renaming "), " to ")
		if ok {
			p.resp.Sources = append(p.resp.Sources, src)
			p.resp.Destinations = append(p.resp.Destinations, dst)
		}
	case strings.HasPrefix(text, "Warning:"), strings.HasPrefix(text, "warning:"):
		p.resp.Comments = append(p.resp.Comments, text)
	}
	return nil
}

// moveOperand reads the path of "Adding   : t2.txt".
func moveOperand(text, verb string) (string, bool) {
	rest := strings.TrimLeft(strings.TrimPrefix(text, verb), " ")
	rest, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return "", false
	}
	path := strings.TrimSpace(rest)
	return path, path != ""
}

func (p *moveParser) response() Response {
	resp := p.resp
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	if resp.Destinations == nil {
		resp.Destinations = []string{}
	}
	return &resp
}
