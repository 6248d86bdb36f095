package git

import "strings"

// Line is one line of process output. Numbers start at 1.
type Line struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// errorLog implements the failure rule shared by every parser: a line starting
// with "fatal" or "error" switches the parser into failure mode, and from then on
// every line is kept as context instead of being interpreted.
type errorLog struct {
	lines []Line
}

func isErrorLine(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "fatal") || strings.HasPrefix(trimmed, "error")
}

// observe reports whether the line was taken as failure context.
func (e *errorLog) observe(line Line) bool {
	if len(e.lines) > 0 || isErrorLine(line.Text) {
		e.lines = append(e.lines, line)
		return true
	}
	return false
}

func (e *errorLog) failed() bool {
	return len(e.lines) > 0
}

func (e *errorLog) failures() *errorLog {
	return e
}
