package parser

import (
	"errors"
	"os"
	"strconv"
)

const nullKeyword = "NULL"

type Parser struct {
	lexer *Lexer
	file  string
}

func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// Parse parses a complete reaction network. The first mismatch aborts the
// parse and is returned as a *ParseError.
func Parse(input string) (*Document, error) {
	return NewParser(input).ParseDocument()
}

func ParseFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := NewParser(string(content))
	p.file = path
	return p.ParseDocument()
}

func (p *Parser) ParseDocument() (*Document, error) {
	doc := &Document{Path: p.file}
	p.lexer.Consume(SpaceDelimiter)

	for !p.lexer.AtEOF() {
		rec, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			doc.Records = append(doc.Records, rec)
		}
	}

	return doc, nil
}

// parseLine consumes one logical line including its line break and
// returns the record it holds, if any. Anything left on a line that is not
// noise is an error here, so reaching the end of input means nothing
// trailing remains.
func (p *Parser) parseLine() (*Record, error) {
	var rec *Record
	if p.atRecordStart() {
		var err error
		rec, err = p.parseRecord()
		if err != nil {
			return nil, err
		}
	}

	p.lexer.ConsumeNoise()
	if p.lexer.AtEOF() || p.lexer.Consume(NewLineDelimiter) {
		return rec, nil
	}

	pos := p.lexer.Pos()
	if rec != nil {
		return nil, p.errorAt(TrailingContent, pos, "',', a comment or a line break", nil)
	}
	e := p.errorAt(UnrecognizedLine, pos, "a reaction or a species count", nil)
	e.Message = "line is neither a reaction nor a species count"
	return nil, e
}

func (p *Parser) atRecordStart() bool {
	if p.lexer.AtLineEnd() {
		return false
	}
	pos := p.lexer.Pos()
	if _, ok := p.lexer.Match(CommaDelimiter, pos); ok {
		return false
	}
	_, ok := p.lexer.Comment(pos)
	return !ok
}

// parseRecord tries a reaction first, then a species count. A failed
// attempt leaves the cursor where the record started.
func (p *Parser) parseRecord() (*Record, error) {
	start := p.lexer.Pos()
	line := p.lexer.Line()

	reaction, err := p.parseReaction()
	if err == nil {
		return &Record{Kind: RecordReaction, Line: line, Reaction: reaction}, nil
	}
	p.lexer.Reset(start)
	// '=>' only ever appears in reactions, so a line carrying one is a
	// broken reaction rather than some other kind of record.
	if p.lexer.LineHasArrow() {
		return nil, err
	}

	species, err := p.parseSpeciesCount()
	if err != nil {
		p.lexer.Reset(start)
		return nil, err
	}
	return &Record{Kind: RecordSpeciesCount, Line: line, Species: species}, nil
}

func (p *Parser) parseReaction() (*Reaction, error) {
	reactants, err := p.parseList()
	if err != nil {
		return nil, p.reactionError("reactants", err)
	}
	if !p.lexer.Consume(FatArrowDelimiter) {
		return nil, p.reactionError(FatArrowDelimiter.String(), nil)
	}
	products, err := p.parseList()
	if err != nil {
		return nil, p.reactionError("products", err)
	}
	if !p.lexer.Consume(CommaDelimiter) {
		return nil, p.reactionError("',' before the rate", nil)
	}
	rate, err := p.parseCoefficient()
	if err != nil {
		return nil, p.reactionError("rate", err)
	}
	return &Reaction{Reactants: reactants, Products: products, Rate: rate}, nil
}

func (p *Parser) reactionError(expected string, cause error) *ParseError {
	offset := p.lexer.Pos()
	var inner *ParseError
	if errors.As(cause, &inner) {
		offset = inner.Offset
	}
	return p.errorAt(MalformedReaction, offset, expected, cause)
}

// parseSpeciesCount fails with UnrecognizedLine until the name and comma
// have matched, and with MalformedSpeciesCount after that.
func (p *Parser) parseSpeciesCount() (*SpeciesCount, error) {
	start := p.lexer.Pos()
	name, err := p.parseName()
	if err != nil || !p.lexer.Consume(CommaDelimiter) {
		e := p.errorAt(UnrecognizedLine, start, "a reaction or a species count", nil)
		e.Message = "line is neither a reaction nor a species count"
		return nil, e
	}
	count, err := p.parseCoefficient()
	if err != nil {
		var inner *ParseError
		errors.As(err, &inner)
		return nil, p.errorAt(MalformedSpeciesCount, inner.Offset, "initial count", err)
	}
	return &SpeciesCount{Name: name, Count: count}, nil
}

// parseList parses reactants or products: NULL, or terms joined by '+'.
func (p *Parser) parseList() ([]Term, error) {
	start := p.lexer.Pos()
	if end := p.nameEnd(start); p.lexer.input[start:end] == nullKeyword {
		p.lexer.Reset(end)
		return nil, nil
	}

	first, err := p.parseTerm()
	if err != nil {
		return nil, p.errorAt(EmptyList, start, "NULL or a term", err)
	}
	terms := []Term{first}
	for p.lexer.Consume(PlusDelimiter) {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// parseTerm tries "coefficient space name" before a bare name so a
// leading number is read as a coefficient whenever a name follows it.
func (p *Parser) parseTerm() (Term, error) {
	start := p.lexer.Pos()
	if coef, err := p.parseCoefficient(); err == nil && p.lexer.Consume(SpaceDelimiter) {
		if name, err := p.parseName(); err == nil {
			return Term{Coefficient: coef, Name: name}, nil
		}
	}
	p.lexer.Reset(start)

	name, err := p.parseName()
	if err != nil {
		return Term{}, err
	}
	return Term{Coefficient: 1, Name: name}, nil
}

func (p *Parser) parseCoefficient() (uint64, error) {
	in := p.lexer.input
	start := p.lexer.Pos()
	if start >= len(in) || !isDigit(in[start]) || in[start] == '0' {
		e := p.errorAt(InvalidCoefficient, start, "a positive integer", nil)
		if start < len(in) && in[start] == '0' {
			e.Message = "coefficient has a leading zero"
		}
		return 0, e
	}

	end := start + 1
	for end < len(in) && isDigit(in[end]) {
		end++
	}
	v, err := strconv.ParseUint(in[start:end], 10, 64)
	if err != nil {
		e := p.errorAt(InvalidCoefficient, start, "", err)
		e.Message = "coefficient out of range"
		return 0, e
	}
	p.lexer.Reset(end)
	return v, nil
}

func (p *Parser) parseName() (string, error) {
	start := p.lexer.Pos()
	end := p.nameEnd(start)
	if end == start {
		return "", p.errorAt(EmptyName, start, "a species name", nil)
	}
	p.lexer.Reset(end)
	return p.lexer.input[start:end], nil
}

func (p *Parser) nameEnd(pos int) int {
	end := pos
	for end < len(p.lexer.input) && !p.lexer.AtDelimiter(end) {
		end++
	}
	return end
}

func (p *Parser) errorAt(kind ErrorKind, offset int, expected string, cause error) *ParseError {
	line, col := p.lexer.Position(offset)
	return &ParseError{
		Kind:     kind,
		File:     p.file,
		Offset:   offset,
		Line:     line,
		Column:   col,
		Expected: expected,
		Snippet:  p.lexer.LineText(offset),
		Cause:    cause,
	}
}
