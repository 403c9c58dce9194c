// Package kb implements the line-oriented knowledge-base text format (§6):
// beginFact/beginRule/beginGoal blocks that the parser turns into the
// entity model's Fact, Rule, and GoalContainer values. This is the
// out-of-scope "external collaborator" the rest of the engine is specified
// against; stdlib bufio.Scanner is used for line splitting since nothing in
// the reference stack offers a library for this ad hoc grammar.
package kb

import (
	"bufio"
	"io"
	"os"
	"strings"

	"expertsys/internal/container"
	"expertsys/internal/entity"
	"expertsys/internal/syntax"
	"expertsys/internal/value"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockFact
	blockGoalFact
	blockRuleAntecedent
	blockRuleConsequent
	blockGoal
)

// KnowledgeBase is the fully parsed result: initial facts, the rule base
// (rules with logic variables sit in the unbound bucket until the binder
// runs; rules without any are stored as bound), and the goal.
type KnowledgeBase struct {
	Facts *container.FactContainer
	Rules *container.RuleContainer
	Goal  *container.GoalContainer
}

// ParseFile reads and parses a knowledge-base file from disk.
func ParseFile(path string) (*KnowledgeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the line-oriented knowledge-base grammar from r.
func Parse(r io.Reader) (*KnowledgeBase, error) {
	kbase := &KnowledgeBase{
		Facts: container.NewFactContainer(),
		Rules: container.NewRuleContainer(),
		Goal:  container.NewGoalContainer(),
	}

	state := blockNone
	var (
		curFact       entity.Fact
		curGoalFact   entity.Fact
		curRuleName   string
		curAntecedent entity.Antecedent
		curConsequent entity.Consequent
		lineNo        int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "beginFact:"):
			switch state {
			case blockNone, blockGoal:
			default:
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			name := strings.TrimPrefix(line, "beginFact:")
			if name == "" {
				return nil, newSyntaxError(UnnamedFact, lineNo, line)
			}
			if state == blockGoal {
				curGoalFact = entity.NewFact(name)
				state = blockGoalFact
			} else {
				curFact = entity.NewFact(name)
				state = blockFact
			}

		case line == "endFact":
			switch state {
			case blockFact:
				kbase.Facts.Set(curFact)
				state = blockNone
			case blockGoalFact:
				kbase.Goal.Set(curGoalFact)
				state = blockGoal
			default:
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}

		case strings.HasPrefix(line, "beginRule:"):
			if state != blockNone {
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			curRuleName = strings.TrimPrefix(line, "beginRule:")
			if curRuleName == "" {
				return nil, newSyntaxError(UnnamedFact, lineNo, line)
			}
			curAntecedent = entity.Antecedent{}
			curConsequent = entity.Consequent{}
			state = blockRuleAntecedent

		case line == "then":
			if state != blockRuleAntecedent {
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			if len(curAntecedent.Disjunctions) == 0 {
				return nil, newSyntaxError(EmptyAntecedent, lineNo, line)
			}
			state = blockRuleConsequent

		case line == "endRule":
			if state != blockRuleConsequent {
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			if len(curConsequent.Conclusions) == 0 {
				return nil, newSyntaxError(EmptyConsequent, lineNo, line)
			}
			if err := kbase.Rules.Add(entity.Rule{Name: curRuleName, Antecedent: curAntecedent, Consequent: curConsequent}); err != nil {
				return nil, err
			}
			state = blockNone

		case line == "beginGoal:" || line == "beginGoal":
			if state != blockNone {
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			state = blockGoal

		case line == "endGoal":
			if state != blockGoal {
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
			state = blockNone

		default:
			switch state {
			case blockFact:
				attr, val, err := parseAttrLine(line, lineNo)
				if err != nil {
					return nil, err
				}
				curFact.Attrs[attr] = val

			case blockGoalFact:
				attr, val, err := parseAttrLine(line, lineNo)
				if err != nil {
					return nil, err
				}
				curGoalFact.Attrs[attr] = val

			case blockRuleAntecedent:
				d, err := parseDisjunction(line, lineNo)
				if err != nil {
					return nil, err
				}
				curAntecedent.Disjunctions = append(curAntecedent.Disjunctions, d)

			case blockRuleConsequent:
				c, err := parseConclusion(line, lineNo)
				if err != nil {
					return nil, err
				}
				curConsequent.Conclusions = append(curConsequent.Conclusions, c)

			default:
				return nil, newSyntaxError(MisplacedDelimiter, lineNo, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != blockNone {
		return nil, newSyntaxError(UnendedBlock, lineNo, "unexpected end of input")
	}

	return kbase, nil
}

// stripComment removes a trailing "#" comment, honoring double-quoted
// strings so a literal containing '#' is never truncated.
func stripComment(line string) string {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return line[:i]
			}
		}
	}
	return line
}

// parseAttrLine parses "attr = literal" into a fact attribute assignment.
func parseAttrLine(line string, lineNo int) (attr string, val value.Value, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", value.Value{}, newSyntaxError(BadLiteral, lineNo, line)
	}
	attr = strings.TrimSpace(line[:idx])
	raw := strings.TrimSpace(line[idx+1:])
	if attr == "" || raw == "" {
		return "", value.Value{}, newSyntaxError(BadLiteral, lineNo, line)
	}
	return attr, syntax.CastTrial(raw), nil
}

// parseDisjunction splits a rule-body line on "||" into one Condition per
// predicate call.
func parseDisjunction(line string, lineNo int) (entity.Disjunction, error) {
	parts := strings.Split(line, "||")
	d := entity.Disjunction{}
	for _, p := range parts {
		c, err := parseCondition(strings.TrimSpace(p), lineNo)
		if err != nil {
			return entity.Disjunction{}, err
		}
		d.Conditions = append(d.Conditions, c)
	}
	return d, nil
}

var predicateNames = map[string]entity.PredicateID{
	"equal":              entity.Eq,
	"not_equal":          entity.Neq,
	"greater_than":       entity.Gt,
	"less_than":          entity.Lt,
	"greater_equal_than": entity.Gte,
	"less_equal_than":    entity.Lte,
}

var actionNames = map[string]entity.ActionID{
	"assert":  entity.Assert,
	"retract": entity.Retract,
	"add":     entity.Add,
	"update":  entity.Update,
	"remove":  entity.Remove,
}

// parseCondition parses "<pred>(<factref>,<attr>,<value>)".
func parseCondition(s string, lineNo int) (entity.Condition, error) {
	name, args, err := splitCall(s, lineNo)
	if err != nil {
		return entity.Condition{}, err
	}
	pred, ok := predicateNames[name]
	if !ok {
		return entity.Condition{}, newSyntaxError(UnknownPredicate, lineNo, name)
	}
	if len(args) != 3 {
		return entity.Condition{}, newSyntaxError(BadArgumentCount, lineNo, s)
	}
	return entity.Condition{Predicate: pred, FactName: args[0], Attr: args[1], Value: args[2]}, nil
}

// parseConclusion parses "<action>(<factref>[,<attr>[,<value>]])".
func parseConclusion(s string, lineNo int) (entity.Conclusion, error) {
	name, args, err := splitCall(s, lineNo)
	if err != nil {
		return entity.Conclusion{}, err
	}
	action, ok := actionNames[name]
	if !ok {
		return entity.Conclusion{}, newSyntaxError(UnknownAction, lineNo, name)
	}
	if len(args) == 0 {
		return entity.Conclusion{}, newSyntaxError(BadArgumentCount, lineNo, s)
	}
	factName := args[0]
	rest := args[1:]

	switch action {
	case entity.Assert, entity.Retract:
		if len(rest) != 0 {
			return entity.Conclusion{}, newSyntaxError(BadArgumentCount, lineNo, s)
		}
	case entity.Remove:
		if len(rest) != 1 {
			return entity.Conclusion{}, newSyntaxError(BadArgumentCount, lineNo, s)
		}
	case entity.Add, entity.Update:
		if len(rest) != 2 {
			return entity.Conclusion{}, newSyntaxError(BadArgumentCount, lineNo, s)
		}
	}

	return entity.Conclusion{Action: action, FactName: factName, Args: rest}, nil
}

// splitCall parses "name(arg1,arg2,...)" into its name and comma-separated
// arguments, trimming whitespace around each.
func splitCall(s string, lineNo int) (string, []string, error) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, newSyntaxError(BadArgumentCount, lineNo, s)
	}
	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil, nil
	}
	rawArgs := splitArgs(inner)
	args := make([]string, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = strings.TrimSpace(a)
	}
	return name, args, nil
}

// splitArgs splits on top-level commas, honoring double-quoted strings so a
// quoted comma is never treated as a separator.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			args = append(args, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	args = append(args, cur.String())
	return args
}
