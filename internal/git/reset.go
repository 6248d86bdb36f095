package git

import "strings"

// ResetResponse holds the output of git reset.
type ResetResponse struct {
	Outcome `yaml:",inline"`

	// HeadSha and HeadMessage are only printed by --hard and similar resets.
	HeadSha     string `json:"head_sha,omitempty" yaml:"head_sha,omitempty"`
	HeadMessage string `json:"head_message,omitempty" yaml:"head_message,omitempty"`
	// NeedsUpdate lists paths left modified in the working tree.
	NeedsUpdate []string `json:"needs_update,omitempty" yaml:"needs_update,omitempty"`
}

func (*ResetResponse) Command() Command { return CommandReset }

type resetParser struct {
	errorLog
	unstagedSection bool
	resp            ResetResponse
}

func newResetParser() *resetParser {
	return &resetParser{}
}

func (p *resetParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	switch {
	case strings.HasPrefix(text, "HEAD is now at "):
		sha, msg, _ := strings.Cut(strings.TrimPrefix(text, "HEAD is now at "), " ")
		p.resp.HeadSha = sha
		p.resp.HeadMessage = strings.TrimSpace(msg)
	case strings.HasSuffix(text, ": needs update"):
		p.resp.NeedsUpdate = append(p.resp.NeedsUpdate, strings.TrimSuffix(text, ": needs update"))
	case strings.HasPrefix(text, "Unstaged changes after reset"):
		p.unstagedSection = true
	case p.unstagedSection:
		if _, path, ok := fileStatusLine(text); ok {
			p.resp.NeedsUpdate = append(p.resp.NeedsUpdate, path)
		}
	}
	return nil
}

func (p *resetParser) response() Response {
	resp := p.resp
	return &resp
}
