// Package evaluator resolves attribute references and arithmetic
// expressions in a fully-bound rule against a concrete state, producing a
// rule whose condition/conclusion values are literal (§4.E).
package evaluator

import (
	"fmt"

	"expertsys/internal/container"
	"expertsys/internal/entity"
	"expertsys/internal/syntax"
	"expertsys/internal/value"
)

// ValueEvaluatingError reports an expression with more than one arithmetic
// operator (§4.E: "multiple operators ⇒ error").
type ValueEvaluatingError struct {
	Expr string
}

func (e *ValueEvaluatingError) Error() string {
	return fmt.Sprintf("cannot evaluate expression with multiple operators: %q", e.Expr)
}

// NotNumericOperandError reports an arithmetic operand that did not resolve
// to a numeric value.
type NotNumericOperandError struct {
	Operand string
}

func (e *NotNumericOperandError) Error() string {
	return fmt.Sprintf("operand %q is not numeric", e.Operand)
}

// EvaluateValues returns a deep copy of rule with every attribute reference
// and arithmetic expression resolved against facts. rule must be fully
// bound; the input is not mutated.
func EvaluateValues(rule entity.Rule, facts *container.FactContainer) (entity.Rule, error) {
	out := rule.Clone()

	for di, d := range out.Antecedent.Disjunctions {
		for ci, c := range d.Conditions {
			v, err := resolve(c.Value, facts)
			if err != nil {
				return entity.Rule{}, err
			}
			c.Value = v.String()
			out.Antecedent.Disjunctions[di].Conditions[ci] = c
		}
	}

	for i, c := range out.Consequent.Conclusions {
		for ai, a := range c.Args {
			v, err := resolve(a, facts)
			if err != nil {
				return entity.Rule{}, err
			}
			c.Args[ai] = v.String()
		}
		out.Consequent.Conclusions[i] = c
	}

	return out, nil
}

// resolve evaluates a single operand/expression string into a concrete
// Value: an arithmetic expression, a bare attribute reference, or a literal.
func resolve(expr string, facts *container.FactContainer) (value.Value, error) {
	if left, op, right, ok, multiple := syntax.SplitArithmetic(expr); ok || multiple {
		if multiple {
			return value.Value{}, &ValueEvaluatingError{Expr: expr}
		}
		lv, err := resolveOperand(left, facts)
		if err != nil {
			return value.Value{}, err
		}
		rv, err := resolveOperand(right, facts)
		if err != nil {
			return value.Value{}, err
		}
		if lv.Kind == value.NIL || rv.Kind == value.NIL {
			return value.NewNIL(), nil
		}
		if !lv.IsNumeric() {
			return value.Value{}, &NotNumericOperandError{Operand: left}
		}
		if !rv.IsNumeric() {
			return value.Value{}, &NotNumericOperandError{Operand: right}
		}
		return applyArithmetic(lv.AsFloat(), op, rv.AsFloat()), nil
	}
	return resolveOperand(expr, facts)
}

// resolveOperand resolves a single operand: an attribute reference or a
// literal. An absent referenced attribute yields NIL, not an error (§4.E).
func resolveOperand(operand string, facts *container.FactContainer) (value.Value, error) {
	if name, attr, ok := syntax.SplitArrow(operand); ok {
		fact, err := facts.Get(name)
		if err != nil {
			return value.NewNIL(), nil
		}
		v, ok := fact.Get(attr)
		if !ok {
			return value.NewNIL(), nil
		}
		return v, nil
	}
	return syntax.CastTrial(operand), nil
}

// applyArithmetic performs the single binary operation using true division
// (never integer truncation), returning a Float result.
func applyArithmetic(l float64, op byte, r float64) value.Value {
	switch op {
	case '+':
		return value.NewFloat(l + r)
	case '-':
		return value.NewFloat(l - r)
	case '*':
		return value.NewFloat(l * r)
	case '/':
		return value.NewFloat(l / r)
	}
	return value.NewNIL()
}
