package stlc

import (
	"errors"
	"fmt"
)

type ParseErrorKind int

const (
	UnexpectedCharacter ParseErrorKind = iota
	UnexpectedToken
	UnexpectedEOF
	ArityMismatch
	UnexpectedRule
	UnsupportedType
	UnboundName
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected end of input"
	case ArityMismatch:
		return "arity mismatch"
	case UnexpectedRule:
		return "unexpected rule"
	case UnsupportedType:
		return "unsupported type"
	case UnboundName:
		return "unbound name"
	}
	panic("unreachable")
}

type ParseError struct {
	Pos  Pos
	Kind ParseErrorKind
	msg  string
}

func NewParseError(pos Pos, kind ParseErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos:  pos,
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Pos, e.msg)
}

// IsIncomplete reports whether err was caused by input ending too early,
// meaning more lines could still turn it into a valid statement.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == UnexpectedEOF
}

type TypeErrorKind int

const (
	UnboundOrUntyped TypeErrorKind = iota
	NonBooleanCondition
	BranchTypeMismatch
	UnannotatedAbstractionParameter
	NotAFunctionApplied
	ArgumentTypeMismatch
)

func (k TypeErrorKind) String() string {
	switch k {
	case UnboundOrUntyped:
		return "unbound or untyped variable"
	case NonBooleanCondition:
		return "condition is not Bool"
	case BranchTypeMismatch:
		return "branches have different types"
	case UnannotatedAbstractionParameter:
		return "abstraction parameter has no type"
	case NotAFunctionApplied:
		return "applied term is not a function"
	case ArgumentTypeMismatch:
		return "argument type mismatch"
	}
	panic("unreachable")
}

type TypeError struct {
	Kind TypeErrorKind
	Term Term
	msg  string
}

func NewTypeError(kind TypeErrorKind, term Term, format string, args ...interface{}) *TypeError {
	return &TypeError{
		Kind: kind,
		Term: term,
		msg:  fmt.Sprintf(format, args...),
	}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s: %s", e.Kind, e.msg)
}

func IsTypeError(err error, kind TypeErrorKind) bool {
	var te *TypeError
	return errors.As(err, &te) && te.Kind == kind
}

func IsParseError(err error, kind ParseErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
