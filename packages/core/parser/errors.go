package parser

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	InvalidCoefficient ErrorKind = iota
	EmptyName
	EmptyList
	MalformedReaction
	MalformedSpeciesCount
	UnrecognizedLine
	TrailingContent
)

var (
	ErrInvalidCoefficient    = errors.New("invalid coefficient")
	ErrEmptyName             = errors.New("empty name")
	ErrEmptyList             = errors.New("empty list")
	ErrMalformedReaction     = errors.New("malformed reaction")
	ErrMalformedSpeciesCount = errors.New("malformed species count")
	ErrUnrecognizedLine      = errors.New("unrecognized line")
	ErrTrailingContent       = errors.New("trailing content")
)

// Err returns the sentinel matched by errors.Is for this kind.
func (k ErrorKind) Err() error {
	switch k {
	case InvalidCoefficient:
		return ErrInvalidCoefficient
	case EmptyName:
		return ErrEmptyName
	case EmptyList:
		return ErrEmptyList
	case MalformedReaction:
		return ErrMalformedReaction
	case MalformedSpeciesCount:
		return ErrMalformedSpeciesCount
	case UnrecognizedLine:
		return ErrUnrecognizedLine
	case TrailingContent:
		return ErrTrailingContent
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	switch k {
	case InvalidCoefficient:
		return "InvalidCoefficient"
	case EmptyName:
		return "EmptyName"
	case EmptyList:
		return "EmptyList"
	case MalformedReaction:
		return "MalformedReaction"
	case MalformedSpeciesCount:
		return "MalformedSpeciesCount"
	case UnrecognizedLine:
		return "UnrecognizedLine"
	case TrailingContent:
		return "TrailingContent"
	default:
		return "unknown"
	}
}

// ParseError reports the first mismatch of a parse. Offset is a byte
// offset into the input, Line and Column are 1-based.
type ParseError struct {
	Kind     ErrorKind
	File     string
	Offset   int
	Line     int
	Column   int
	Expected string
	Message  string
	Snippet  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.describe())
	}
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.describe())
}

// describe renders the message without the location prefix so nested
// causes do not repeat it.
func (e *ParseError) describe() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Err().Error()
	}
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}
	var cause *ParseError
	switch {
	case errors.As(e.Cause, &cause):
		msg += " (" + cause.describe() + ")"
	case e.Cause != nil:
		msg += " (" + e.Cause.Error() + ")"
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.Err()
}

func (e *ParseError) Unwrap() error { return e.Cause }
