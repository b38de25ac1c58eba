package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer_Match(t *testing.T) {
	tests := []struct {
		input string
		delim Delimiter
		end   int
		ok    bool
	}{
		{" A", SpaceDelimiter, 1, true},
		{"  \tA", SpaceDelimiter, 3, true},
		{"A", SpaceDelimiter, 0, false},
		{"+B", PlusDelimiter, 1, true},
		{"  +  B", PlusDelimiter, 5, true},
		{" B", PlusDelimiter, 0, false},
		{"=>B", FatArrowDelimiter, 2, true},
		{" => B", FatArrowDelimiter, 4, true},
		{"=B", FatArrowDelimiter, 0, false},
		{", 5", CommaDelimiter, 2, true},
		{" ,5", CommaDelimiter, 2, true},
		{"\nA", NewLineDelimiter, 1, true},
		{"  \r\n  A", NewLineDelimiter, 6, true},
		{"\rA", NewLineDelimiter, 0, false},
		{"  A", NewLineDelimiter, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.delim.String()+" "+tt.input, func(t *testing.T) {
			l := NewLexer(tt.input)
			end, ok := l.Match(tt.delim, 0)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, 0, l.Pos(), "match must not move the cursor")
		})
	}
}

func TestLexer_Comment(t *testing.T) {
	l := NewLexer("// note => A, 1\r\nB, 2")
	end, ok := l.Comment(0)
	assert.True(t, ok)
	assert.Equal(t, 15, end)

	_, ok = l.Comment(1)
	assert.False(t, ok)

	l = NewLexer("A / B")
	_, ok = l.Comment(2)
	assert.False(t, ok)
}

func TestLexer_AtDelimiter(t *testing.T) {
	l := NewLexer("A+B=>C,D//x\nE=F/G")
	want := map[int]bool{
		0: false, 1: true, 2: false, 3: true, 4: false, 5: false,
		6: true, 7: false, 8: true, 11: true, 12: false, 13: false,
		14: false, 15: false, 17: false,
	}
	for pos, expected := range want {
		assert.Equal(t, expected, l.AtDelimiter(pos), "pos %d", pos)
	}
}

func TestLexer_ConsumeNoise(t *testing.T) {
	l := NewLexer(" , ,, // trailing\nA")
	l.ConsumeNoise()
	assert.Equal(t, 17, l.Pos())
	assert.True(t, l.Consume(NewLineDelimiter))
	assert.Equal(t, 18, l.Pos())
}

func TestLexer_LineHasArrow(t *testing.T) {
	assert.True(t, NewLexer("A => B").LineHasArrow())
	assert.False(t, NewLexer("A, 1 // => not here").LineHasArrow())
	assert.False(t, NewLexer("A, 1\nA => B").LineHasArrow())
	assert.False(t, NewLexer("A = > B").LineHasArrow())
}

func TestLexer_Position(t *testing.T) {
	l := NewLexer("ab\ncd\r\nef")
	line, col := l.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = l.Position(4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = l.Position(8)
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)

	assert.Equal(t, "cd", l.LineText(4))

	// After consuming line breaks, offsets on the current line resolve
	// from its start and earlier offsets still resolve from the top.
	l = NewLexer("ab\n  cd\r\nef")
	l.Reset(2)
	assert.True(t, l.Consume(NewLineDelimiter))
	assert.Equal(t, 2, l.Line())
	assert.Equal(t, 5, l.Pos())
	line, col = l.Position(5)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
	l.Reset(7)
	assert.True(t, l.Consume(NewLineDelimiter))
	assert.Equal(t, 3, l.Line())
	line, col = l.Position(10)
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)
	line, col = l.Position(1)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)
	assert.Equal(t, "ef", l.LineText(9))
}
