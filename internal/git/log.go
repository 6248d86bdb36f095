package git

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// LogResponse holds the records of git log output.
type LogResponse struct {
	Outcome `yaml:",inline"`

	Commits []Commit `json:"commits" yaml:"commits"`
	// Delivered counts records handed to a commit handler instead of being kept.
	Delivered int `json:"delivered,omitempty" yaml:"delivered,omitempty"`
}

func (*LogResponse) Command() Command { return CommandLog }

var numstatLine = regexp.MustCompile(`^(\d+|-)\t(\d+|-)\t(.*)$`)

type logParser struct {
	errorLog
	handler func(Commit)

	current *Commit
	// pending holds indexes into current.Files still waiting for their numstat
	// line. git prints numstat lines in the same order as the raw lines and with
	// no shared key, so they are matched first in, first out.
	pending []int

	resp LogResponse
}

func newLogParser(handler func(Commit)) *logParser {
	return &logParser{handler: handler}
}

func (p *logParser) parseLine(line Line) error {
	if p.observe(line) {
		return nil
	}
	text := line.Text
	if rest, ok := strings.CutPrefix(text, "commit "); ok {
		p.flush()
		c, err := parseCommitLine(rest)
		if err != nil {
			return err
		}
		p.current = c
		return nil
	}
	c := p.current
	if c == nil {
		return nil
	}
	// The *Date variants share a prefix with the bare names and go first.
	switch {
	case strings.HasPrefix(text, "Merge:"):
		if c.ParentSha == "" && len(c.MergeParents) == 0 {
			parents := strings.Fields(strings.TrimPrefix(text, "Merge:"))
			if len(parents) > 0 {
				c.ParentSha = parents[0]
				c.MergeParents = parents[1:]
			}
		}
	case strings.HasPrefix(text, "AuthorDate:"):
		c.AuthorDate = headerValue(text, "AuthorDate:")
	case strings.HasPrefix(text, "Author:"):
		c.Author = headerValue(text, "Author:")
	case strings.HasPrefix(text, "CommitDate:"):
		c.CommitDate = headerValue(text, "CommitDate:")
	case strings.HasPrefix(text, "Commit:"):
		c.Committer = headerValue(text, "Commit:")
	case strings.HasPrefix(text, "Date:"):
		c.AuthorDate = headerValue(text, "Date:")
	case strings.TrimSpace(text) == "":
	case strings.HasPrefix(text, ":"):
		file, ok, err := parseRawDiffLine(text)
		if err != nil {
			return err
		}
		if !ok {
			p.appendMessage(text)
			return nil
		}
		c.Files = append(c.Files, file)
		p.pending = append(p.pending, len(c.Files)-1)
	default:
		if m := numstatLine.FindStringSubmatch(text); m != nil {
			return p.applyNumstat(line, m[1], m[2])
		}
		p.appendMessage(text)
	}
	return nil
}

func headerValue(text, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, prefix))
}

func (p *logParser) appendMessage(text string) {
	c := p.current
	text = strings.TrimSpace(text)
	if c.Message != "" {
		c.Message += "\n"
	}
	c.Message += text
}

func (p *logParser) applyNumstat(line Line, added, deleted string) error {
	if len(p.pending) == 0 {
		slog.Debug("numstat line without raw diff entry", slog.Int("line", line.Number), slog.String("text", line.Text))
		return nil
	}
	file := &p.current.Files[p.pending[0]]
	p.pending = p.pending[1:]
	a, _ := parseLineCount(added)
	d, _ := parseLineCount(deleted)
	if err := file.SetLinesAdded(a); err != nil {
		return err
	}
	return file.SetLinesDeleted(d)
}

func (p *logParser) flush() {
	if p.current == nil {
		return
	}
	c := *p.current
	p.current = nil
	p.pending = nil
	if p.handler != nil {
		p.handler(c)
		p.resp.Delivered++
		return
	}
	p.resp.Commits = append(p.resp.Commits, c)
}

func (p *logParser) response() Response {
	p.flush()
	resp := p.resp
	if resp.Commits == nil {
		resp.Commits = []Commit{}
	}
	return &resp
}

// parseCommitLine reads "<sha> [<parent>...] [(from <sha>)] [(<ref>, tag: <t>, ...)]".
func parseCommitLine(rest string) (*Commit, error) {
	head, tail := rest, ""
	if i := strings.IndexByte(rest, '('); i >= 0 {
		head, tail = rest[:i], rest[i:]
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return nil, invariantf("commit line %q has no sha", "commit "+rest)
	}
	c := &Commit{Sha: fields[0]}
	if len(fields) > 1 {
		c.ParentSha = fields[1]
		c.MergeParents = fields[2:]
	}

	tail = strings.TrimSpace(tail)
	if strings.HasPrefix(tail, "(from ") {
		if end := strings.IndexByte(tail, ')'); end >= 0 {
			c.MergeOriginSha = strings.TrimSpace(tail[len("(from "):end])
			tail = strings.TrimSpace(tail[end+1:])
		}
	}
	if strings.HasPrefix(tail, "(") && strings.HasSuffix(tail, ")") {
		for _, ref := range strings.Split(tail[1:len(tail)-1], ",") {
			ref = strings.TrimPrefix(strings.TrimSpace(ref), "tag: ")
			if ref != "" {
				c.Tags = append(c.Tags, ref)
			}
		}
	}
	return c, nil
}

// parseRawDiffLine reads ":<old mode> <new mode> <old blob> <new blob> <status>\t<path>[\t<path>]".
// ok is false when the line does not have the shape of a raw diff line at all.
func parseRawDiffLine(text string) (CommitFile, bool, error) {
	body := text[1:]
	var meta, paths []string
	if i := strings.IndexByte(body, '\t'); i >= 0 {
		meta = strings.Fields(body[:i])
		paths = strings.Split(body[i+1:], "\t")
	} else {
		fields := strings.Fields(body)
		if len(fields) < 6 {
			return CommitFile{}, false, nil
		}
		meta, paths = fields[:5], fields[5:]
	}
	if len(meta) != 5 || len(paths) == 0 || paths[0] == "" {
		return CommitFile{}, false, nil
	}

	file := newCommitFile()
	var err error
	if file.OldMode, err = parseMode(meta[0]); err != nil {
		return CommitFile{}, false, invariantf("raw diff line %q: old mode: %v", text, err)
	}
	if file.NewMode, err = parseMode(meta[1]); err != nil {
		return CommitFile{}, false, invariantf("raw diff line %q: new mode: %v", text, err)
	}
	// Abbreviated ids may carry a trailing "...".
	file.OldBlob = strings.TrimRight(meta[2], ".")
	file.NewBlob = strings.TrimRight(meta[3], ".")
	status := meta[4]
	file.Kind = parseChangeKind(status[0])
	if len(status) > 1 {
		file.Score, _ = strconv.Atoi(status[1:])
	}
	if (file.Kind == ChangeRenamed || file.Kind == ChangeCopied) && len(paths) >= 2 {
		file.OriginName = paths[0]
		file.Path = paths[1]
	} else {
		file.Path = paths[0]
	}
	return file, true, nil
}
