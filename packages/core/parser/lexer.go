package parser

import "strings"

// Delimiter identifies one of the silent separators of the network format.
// Delimiters shape the parse but never show up in the Document.
type Delimiter int

const (
	SpaceDelimiter Delimiter = iota
	PlusDelimiter
	FatArrowDelimiter
	CommaDelimiter
	NewLineDelimiter
)

func (d Delimiter) String() string {
	switch d {
	case SpaceDelimiter:
		return "space"
	case PlusDelimiter:
		return "'+'"
	case FatArrowDelimiter:
		return "'=>'"
	case CommaDelimiter:
		return "','"
	case NewLineDelimiter:
		return "line break"
	default:
		return "unknown"
	}
}

var delimiters = []Delimiter{
	SpaceDelimiter,
	PlusDelimiter,
	FatArrowDelimiter,
	CommaDelimiter,
	NewLineDelimiter,
}

const commentMarker = "//"

// Lexer is a cursor over the input. Its match methods only peek: they
// report where a match would end and leave pos alone. Consume is the only
// method that moves the cursor.
type Lexer struct {
	input string
	pos   int

	// line and lineStart track the last line break consumed, so positions
	// on the current line resolve without rescanning the input.
	line      int
	lineStart int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

func (l *Lexer) Pos() int { return l.pos }

func (l *Lexer) Reset(pos int) { l.pos = pos }

func (l *Lexer) AtEOF() bool { return l.pos >= len(l.input) }

// Match reports the end offset of delimiter d starting at pos.
func (l *Lexer) Match(d Delimiter, pos int) (int, bool) {
	switch d {
	case SpaceDelimiter:
		end := l.skipSpaces(pos)
		return end, end > pos
	case PlusDelimiter:
		return l.padded(pos, "+")
	case FatArrowDelimiter:
		return l.padded(pos, "=>")
	case CommaDelimiter:
		return l.padded(pos, ",")
	case NewLineDelimiter:
		i := l.skipSpaces(pos)
		end, ok := l.lineBreak(i)
		if !ok {
			return pos, false
		}
		return l.skipSpaces(end), true
	}
	return pos, false
}

// Comment reports the end of a comment starting at pos. The line break
// that terminates it is not part of the comment.
func (l *Lexer) Comment(pos int) (int, bool) {
	if !strings.HasPrefix(l.input[pos:], commentMarker) {
		return pos, false
	}
	end := pos + len(commentMarker)
	for end < len(l.input) {
		if _, ok := l.lineBreak(end); ok {
			break
		}
		end++
	}
	return end, true
}

// AtDelimiter reports whether any delimiter or a comment starts at pos.
func (l *Lexer) AtDelimiter(pos int) bool {
	if pos >= len(l.input) {
		return false
	}
	for _, d := range delimiters {
		if _, ok := l.Match(d, pos); ok {
			return true
		}
	}
	_, ok := l.Comment(pos)
	return ok
}

// Consume advances past delimiter d if it matches at the cursor.
func (l *Lexer) Consume(d Delimiter) bool {
	end, ok := l.Match(d, l.pos)
	if !ok {
		return false
	}
	if d == NewLineDelimiter {
		brk, _ := l.lineBreak(l.skipSpaces(l.pos))
		l.line++
		l.lineStart = brk
	}
	l.pos = end
	return true
}

// Line returns the 1-based line of the cursor.
func (l *Lexer) Line() int { return l.line }

// ConsumeComment advances past a comment if one starts at the cursor.
func (l *Lexer) ConsumeComment() bool {
	end, ok := l.Comment(l.pos)
	if ok {
		l.pos = end
	}
	return ok
}

// ConsumeNoise skips any run of commas, spaces and comments that does not
// cross a line break.
func (l *Lexer) ConsumeNoise() {
	for {
		start := l.pos
		l.pos = l.skipSpaces(l.pos)
		l.Consume(CommaDelimiter)
		l.ConsumeComment()
		if l.pos == start {
			return
		}
	}
}

// AtLineEnd reports whether only spaces remain before a line break or the
// end of input.
func (l *Lexer) AtLineEnd() bool {
	i := l.skipSpaces(l.pos)
	if i >= len(l.input) {
		return true
	}
	_, ok := l.lineBreak(i)
	return ok
}

// LineHasArrow reports whether '=>' appears between the cursor and the end
// of the current line, ignoring any comment.
func (l *Lexer) LineHasArrow() bool {
	for i := l.pos; i < len(l.input); i++ {
		if _, ok := l.lineBreak(i); ok {
			return false
		}
		if _, ok := l.Comment(i); ok {
			return false
		}
		if strings.HasPrefix(l.input[i:], "=>") {
			return true
		}
	}
	return false
}

// Position converts a byte offset into a 1-based line and column. Offsets
// at or after the current line are counted from its start.
func (l *Lexer) Position(offset int) (line, column int) {
	if offset > len(l.input) {
		offset = len(l.input)
	}
	base, line := 0, 1
	if offset >= l.lineStart {
		base, line = l.lineStart, l.line
	}
	seg := l.input[base:offset]
	line += strings.Count(seg, "\n")
	column = len(seg) - (strings.LastIndexByte(seg, '\n') + 1) + 1
	return line, column
}

// LineText returns the source line containing offset without its break.
func (l *Lexer) LineText(offset int) string {
	if offset > len(l.input) {
		offset = len(l.input)
	}
	start := strings.LastIndexByte(l.input[:offset], '\n') + 1
	end := strings.IndexByte(l.input[offset:], '\n')
	if end < 0 {
		end = len(l.input)
	} else {
		end += offset
	}
	return strings.TrimSuffix(l.input[start:end], "\r")
}

func (l *Lexer) padded(pos int, token string) (int, bool) {
	i := l.skipSpaces(pos)
	if !strings.HasPrefix(l.input[i:], token) {
		return pos, false
	}
	return l.skipSpaces(i + len(token)), true
}

func (l *Lexer) lineBreak(pos int) (int, bool) {
	switch {
	case strings.HasPrefix(l.input[pos:], "\r\n"):
		return pos + 2, true
	case strings.HasPrefix(l.input[pos:], "\n"):
		return pos + 1, true
	}
	return pos, false
}

func (l *Lexer) skipSpaces(pos int) int {
	for pos < len(l.input) && isSpace(l.input[pos]) {
		pos++
	}
	return pos
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
