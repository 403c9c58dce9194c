package kb

import "fmt"

// SyntaxErrorKind names one of the malformed-text conditions the parser can
// report (§7's ParserSyntax family).
type SyntaxErrorKind int

const (
	UnnamedFact SyntaxErrorKind = iota
	UnendedBlock
	MisplacedDelimiter
	EmptyAntecedent
	EmptyConsequent
	BadArithmetic
	BadArgumentCount
	BadLiteral
	UnknownPredicate
	UnknownAction
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnnamedFact:
		return "unnamed_fact"
	case UnendedBlock:
		return "unended_block"
	case MisplacedDelimiter:
		return "misplaced_delimiter"
	case EmptyAntecedent:
		return "empty_antecedent"
	case EmptyConsequent:
		return "empty_consequent"
	case BadArithmetic:
		return "bad_arithmetic"
	case BadArgumentCount:
		return "bad_argument_count"
	case BadLiteral:
		return "bad_literal"
	case UnknownPredicate:
		return "unknown_predicate"
	case UnknownAction:
		return "unknown_action"
	}
	return "unknown"
}

// SyntaxError reports one malformed-text condition found while parsing a
// knowledge-base file, with the 1-based line number it occurred on.
type SyntaxError struct {
	Kind SyntaxErrorKind
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Text)
}

func newSyntaxError(kind SyntaxErrorKind, line int, text string) error {
	return &SyntaxError{Kind: kind, Line: line, Text: text}
}
