// Package syntax provides the small lexical helpers the binder and
// evaluator share: logic-variable token extraction, literal casting, and
// arithmetic-operator detection. Patterns are kept as named, precompiled
// regexps.
package syntax

import (
	"regexp"
	"strconv"
	"strings"

	"expertsys/internal/value"
)

// variablePattern matches a logic-variable token: "?" followed by a Go-style
// identifier. Used both to detect whether a string mentions a variable at
// all and to pull out the first one for the binder's expansion order.
var variablePattern = regexp.MustCompile(`\?[A-Za-z_][A-Za-z0-9_]*`)

// IsVariable reports whether s begins with the logic-variable marker "?",
// e.g. a Condition's fact_name field of "?X" or a value of "?X->y".
func IsVariable(s string) bool {
	return strings.HasPrefix(s, "?")
}

// FirstVariable returns the first "?var" token appearing anywhere in s, or
// "" if none is present. Per §4.D's edge cases, this is how the binder finds
// the variable to expand out of a condition's value string, independent of
// where in the string it occurs.
func FirstVariable(s string) string {
	return variablePattern.FindString(s)
}

// SubstituteVariable replaces every whole-token occurrence of the logic
// variable varName (including its leading "?") in s with replacement.
// Substitution is textual but whole-identifier: replacing "?X" must never
// touch "?XY". Go's \b word-boundary assertion gives us this for free since
// "X" followed immediately by "Y" (both word characters) never matches a
// boundary.
func SubstituteVariable(s, varName, replacement string) string {
	name := strings.TrimPrefix(varName, "?")
	pattern := regexp.MustCompile(`\?` + regexp.QuoteMeta(name) + `\b`)
	return pattern.ReplaceAllString(s, replacement)
}

// ContainsArrow reports whether s contains an attribute-reference arrow.
func ContainsArrow(s string) bool {
	return strings.Contains(s, "->")
}

// ContainsArithmeticOperator reports whether s contains a binary arithmetic
// operator. Per §4.A, the scan must tolerate the minus sign embedded in an
// arrow: '-' counts as an operator only when not immediately followed by
// '>'. Go's regexp package is RE2 and has no lookahead, so this is a manual
// scan rather than a single pattern.
func ContainsArithmeticOperator(s string) bool {
	return firstOperatorIndex(s) >= 0
}

// firstOperatorIndex returns the byte index of the first arithmetic
// operator in s (honoring the "-" vs "->" exception), or -1 if none.
func firstOperatorIndex(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+', '*', '/':
			return i
		case '-':
			if i+1 >= len(s) || s[i+1] != '>' {
				return i
			}
		}
	}
	return -1
}

// SplitArithmetic splits s on its single arithmetic operator, returning the
// trimmed left and right operand substrings and the operator byte. ok is
// false when s contains no operator (s is a single operand) and multiple is
// true when s contains more than one (§4.E: "multiple operators => error").
func SplitArithmetic(s string) (left string, op byte, right string, ok bool, multiple bool) {
	first := firstOperatorIndex(s)
	if first < 0 {
		return "", 0, "", false, false
	}
	rest := s[first+1:]
	if firstOperatorIndex(rest) >= 0 {
		return "", 0, "", false, true
	}
	return strings.TrimSpace(s[:first]), s[first], strings.TrimSpace(rest), true, false
}

// SplitArrow splits an attribute reference "name->attr" into its parts.
func SplitArrow(s string) (name, attr string, ok bool) {
	idx := strings.Index(s, "->")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+2:]), true
}

// CastTrial converts a raw literal token into a Value, mirroring the
// parser's cast_trial: quoted string -> unquoted string, True/False -> bool,
// integer, float, NIL keyword, otherwise a bare (unquoted) string.
func CastTrial(raw string) value.Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "NIL":
		return value.NewNIL()
	case "True":
		return value.NewBool(true)
	case "False":
		return value.NewBool(false)
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return value.NewString(s[1 : len(s)-1])
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.NewInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.NewFloat(f)
	}
	return value.NewString(s)
}
