package emitter

import (
	"fmt"
	"strings"

	"github.com/viant/scomposer/composer"
	"github.com/viant/scomposer/inspector/graph"
)

// LineEnding selects the line terminator of emitted text
type LineEnding string

const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

// Formatter emits a unit as plain source text with every member moved to column zero
type Formatter struct {
	lineEnding LineEnding
}

// NewFormatter creates a formatter, an empty line ending means LF
func NewFormatter(lineEnding LineEnding) (*Formatter, error) {
	switch strings.ToLower(string(lineEnding)) {
	case "", string(LF):
		return &Formatter{lineEnding: LF}, nil
	case string(CRLF):
		return &Formatter{lineEnding: CRLF}, nil
	}
	return nil, fmt.Errorf("unsupported line ending: %s", lineEnding)
}

// Emit separates members by one blank line and terminates the text with a newline
func (f *Formatter) Emit(unit *composer.Unit) ([]byte, error) {
	if unit == nil {
		return nil, fmt.Errorf("unit was nil")
	}
	builder := &strings.Builder{}
	for i, member := range unit.Members {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(dedent(member.Text, member.Indent, member.Literals))
	}
	if len(unit.Members) > 0 {
		builder.WriteString("\n")
	}
	text := builder.String()
	if f.lineEnding == CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return []byte(text), nil
}

// dedent removes indent from continuation lines and strips trailing whitespace.
// Lines starting inside a literal keep their indent; lines ending inside one keep trailing whitespace.
func dedent(text, indent string, literals []graph.Span) string {
	lines := strings.Split(strings.TrimRight(text, " \t\r\n"), "\n")
	offset := 0
	for i, line := range lines {
		start, end := offset, offset+len(line)
		offset = end + 1
		line = strings.TrimSuffix(line, "\r")
		if i > 0 && !inLiteral(literals, start) {
			line = trimIndent(line, len(indent))
		}
		if !inLiteral(literals, end) {
			line = strings.TrimRight(line, " \t")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func inLiteral(literals []graph.Span, offset int) bool {
	for _, literal := range literals {
		if literal.Contains(offset) {
			return true
		}
	}
	return false
}

// trimIndent removes up to width leading whitespace characters
func trimIndent(line string, width int) string {
	i := 0
	for i < width && i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}
