// Package shell implements the interactive command loop (§6's CLI): a
// single-threaded session that owns working memory, the rule base, and the
// current goal, and dispatches line commands against internal/search,
// internal/kb, and internal/trace.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"expertsys/internal/config"
	"expertsys/internal/container"
	"expertsys/internal/kb"
	"expertsys/internal/search"
	"expertsys/internal/trace"
)

// CommandErrorKind distinguishes shell-level failures that never reach the
// engine (§7's "CommandError / BadArguments / NothingToDo" family).
type CommandErrorKind int

const (
	UnknownCommand CommandErrorKind = iota
	BadArguments
	NothingToDo
)

func (k CommandErrorKind) String() string {
	switch k {
	case UnknownCommand:
		return "unknown_command"
	case BadArguments:
		return "bad_arguments"
	case NothingToDo:
		return "nothing_to_do"
	}
	return "unknown"
}

// CommandError reports a malformed or inapplicable shell command.
type CommandError struct {
	Kind CommandErrorKind
	Text string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Text)
}

// Session holds the working memory a shell command mutates and the
// dependencies it dispatches to. It lives for the duration of one
// interactive run (§4's "Lifecycles").
type Session struct {
	Facts    *container.FactContainer
	Rules    *container.RuleContainer
	Goal     *container.GoalContainer
	Cfg      config.Config
	Recorder *trace.Recorder

	out io.Writer
}

// NewSession returns an empty session ready to accept commands.
func NewSession(cfg config.Config, recorder *trace.Recorder, out io.Writer) *Session {
	return &Session{
		Facts:    container.NewFactContainer(),
		Rules:    container.NewRuleContainer(),
		Goal:     container.NewGoalContainer(),
		Cfg:      cfg,
		Recorder: recorder,
		out:      out,
	}
}

// Run reads commands from r until EOF or a "quit" command, writing responses
// to the session's output stream. It returns the process exit code, which is
// always 0 (normal quit or EOF): command errors are printed and recovered per
// command.
func (s *Session) Run(ctx context.Context, r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, s.Cfg.Shell.Prompt)
		if !scanner.Scan() {
			return 0
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return 0
		}
		if err := s.Dispatch(ctx, line); err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

// Dispatch parses and executes a single command line. Engine-level errors
// (search, container mutation, parsing) and shell-level errors are both
// returned to the caller rather than panicking — per §7, both families are
// "recovered" at the shell boundary so the session continues.
func (s *Session) Dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "load":
		return s.cmdLoad(args)
	case "def_facts":
		return s.cmdDefFacts(args)
	case "del_fact":
		return s.cmdDelFact(args)
	case "def_rule":
		return s.cmdDefRule(args)
	case "del_rule":
		return s.cmdDelRule(args)
	case "facts":
		return s.cmdFacts(args)
	case "rules":
		return s.cmdRules(args)
	case "def_goal":
		return s.cmdDefGoal(args)
	case "del_goal":
		return s.cmdDelGoal(args)
	case "goal":
		return s.cmdGoal(args)
	case "clear_facts":
		return s.cmdClearFacts(args)
	case "clear_rules":
		return s.cmdClearRules(args)
	case "run_BFS":
		return s.cmdRun(ctx, "BFS", args)
	case "run_DFS":
		return s.cmdRun(ctx, "DFS", args)
	case "run_AStar":
		return s.cmdRun(ctx, "AStar", args)
	case "run_BestFirst":
		return s.cmdRun(ctx, "BestFirst", args)
	case "help":
		return s.cmdHelp(args)
	default:
		return &CommandError{Kind: UnknownCommand, Text: cmd}
	}
}

func (s *Session) cmdLoad(args []string) error {
	if len(args) != 1 {
		return &CommandError{Kind: BadArguments, Text: "load <path>"}
	}
	path := args[0]
	if dir := s.Cfg.Shell.KnowledgeBaseDir; dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	kbase, err := kb.ParseFile(path)
	if err != nil {
		return err
	}
	s.Facts.Update(kbase.Facts)
	if err := MergeRules(s.Rules, kbase.Rules); err != nil {
		return err
	}
	if kbase.Goal.Len() > 0 {
		s.Goal = kbase.Goal
	}
	fmt.Fprintf(s.out, "loaded %d facts, goal has %d facts\n", kbase.Facts.Len(), kbase.Goal.Len())
	return nil
}

// MergeRules copies every rule, bound or unbound, out of src and into dst,
// reporting DuplicateItem if a rule in src shares its name with one already
// in dst (§4.B). src is left partially drained on error; callers always
// discard a freshly parsed kbase.Rules right after loading, so this is safe
// to do destructively via PopUnbound.
func MergeRules(dst, src *container.RuleContainer) error {
	for _, r := range src.BoundRules() {
		if err := dst.Add(r); err != nil {
			return err
		}
	}
	for {
		r, ok := src.PopUnbound()
		if !ok {
			break
		}
		if err := dst.Add(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) cmdDefFacts(args []string) error {
	if len(args) < 1 {
		return &CommandError{Kind: BadArguments, Text: "def_facts <path>"}
	}
	kbase, err := kb.ParseFile(args[0])
	if err != nil {
		return err
	}
	s.Facts.Update(kbase.Facts)
	fmt.Fprintf(s.out, "added %d facts\n", kbase.Facts.Len())
	return nil
}

func (s *Session) cmdDelFact(args []string) error {
	if len(args) != 1 {
		return &CommandError{Kind: BadArguments, Text: "del_fact <name>"}
	}
	return s.Facts.Remove(args[0])
}

func (s *Session) cmdDefRule(args []string) error {
	if len(args) < 1 {
		return &CommandError{Kind: BadArguments, Text: "def_rule <path>"}
	}
	kbase, err := kb.ParseFile(args[0])
	if err != nil {
		return err
	}
	if err := MergeRules(s.Rules, kbase.Rules); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "rules added")
	return nil
}

func (s *Session) cmdDelRule(args []string) error {
	if len(args) != 1 {
		return &CommandError{Kind: BadArguments, Text: "del_rule <name>"}
	}
	return s.Rules.RemoveByName(args[0])
}

func (s *Session) cmdFacts(args []string) error {
	for _, name := range s.Facts.Names() {
		f, _ := s.Facts.Get(name)
		fmt.Fprintf(s.out, "%s %v\n", f.Name, f.Attrs)
	}
	return nil
}

func (s *Session) cmdRules(args []string) error {
	for _, r := range s.Rules.BoundRules() {
		fmt.Fprintln(s.out, r.Name)
	}
	return nil
}

func (s *Session) cmdDefGoal(args []string) error {
	if len(args) != 1 {
		return &CommandError{Kind: BadArguments, Text: "def_goal <path>"}
	}
	kbase, err := kb.ParseFile(args[0])
	if err != nil {
		return err
	}
	if kbase.Goal.Len() == 0 {
		return &CommandError{Kind: NothingToDo, Text: "no goal block in file"}
	}
	s.Goal = kbase.Goal
	return nil
}

func (s *Session) cmdDelGoal(args []string) error {
	if len(args) != 1 {
		return &CommandError{Kind: BadArguments, Text: "del_goal <name>"}
	}
	return s.Goal.Remove(args[0])
}

func (s *Session) cmdGoal(args []string) error {
	for _, name := range s.Goal.Names() {
		f, _ := s.Goal.Get(name)
		fmt.Fprintf(s.out, "%s %v\n", f.Name, f.Attrs)
	}
	return nil
}

func (s *Session) cmdClearFacts(args []string) error {
	s.Facts.Clear()
	return nil
}

func (s *Session) cmdClearRules(args []string) error {
	s.Rules.Clear()
	return nil
}

func (s *Session) cmdHelp(args []string) error {
	fmt.Fprintln(s.out, strings.TrimSpace(helpText))
	return nil
}

const helpText = `
load <path>                          parse a knowledge-base file and merge its facts/rules/goal
def_facts <path>                     add facts from a file
del_fact <name>                      remove a fact
def_rule <path>                      add rules from a file
del_rule <name>                      remove a rule by name
facts                                list current facts
rules                                list current bound rules
def_goal <path>                      set the goal from a file
del_goal <name>                      remove a fact from the goal
goal                                 list the current goal
clear_facts                          empty working memory
clear_rules                          empty the rule base
run_BFS [max_depth]                  breadth-first search
run_DFS [max_depth]                  depth-first search
run_AStar <h> [attrs] [max_depth]    A* search
run_BestFirst <h> [attrs] [max_depth] greedy best-first search
help                                  show this text
quit                                 exit the shell
`

// cmdRun dispatches one of the four search engines against the current
// working memory, rule base, and goal.
func (s *Session) cmdRun(ctx context.Context, engine string, args []string) error {
	var (
		heuristicName string
		attrArgs      []string
		maxDepth      = s.Cfg.Engine.DefaultMaxDepth
	)

	rest := args
	if engine == "AStar" || engine == "BestFirst" {
		if len(rest) < 1 {
			return &CommandError{Kind: BadArguments, Text: engine + " <h> [attrs] [max_depth]"}
		}
		heuristicName, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[len(rest)-1]); err == nil {
			maxDepth = n
			rest = rest[:len(rest)-1]
		}
	}
	if len(rest) > 0 {
		attrArgs = strings.Split(rest[0], ",")
	}

	var h search.Heuristic
	if heuristicName != "" {
		var err error
		h, err = buildHeuristic(heuristicName, attrArgs)
		if err != nil {
			return err
		}
	}

	runID := ""
	if s.Recorder != nil {
		runID, _ = s.Recorder.Start("")
	}

	var (
		result search.Result
		err    error
	)
	switch engine {
	case "BFS":
		result, err = search.BFS(s.Facts, s.Rules, s.Goal, maxDepth)
	case "DFS":
		result, err = search.DFS(s.Facts, s.Rules, s.Goal, maxDepth)
	case "AStar":
		result, err = search.AStar(s.Facts, s.Rules, s.Goal, h, maxDepth)
	case "BestFirst":
		result, err = search.BestFirst(s.Facts, s.Rules, s.Goal, h, maxDepth)
	}
	if err != nil {
		return fmt.Errorf("engine error: %w", err)
	}

	if s.Recorder != nil {
		s.Recorder.LogResult(runID, result.Found, len(result.Path), result.Visited)
	}

	fmt.Fprintf(s.out, "found=%v visited=%d path_len=%d penetrance=%.4f\n",
		result.Found, result.Visited, len(result.Path), result.Penetrance())
	for _, r := range result.Path {
		fmt.Fprintln(s.out, "  ", r.Name)
	}
	return nil
}

// buildHeuristic parses a CLI heuristic token and its attribute arguments.
// MANHATTANDISTANCE/LINEARCONFLICT require a "value_attr,x_attr,y_attr"
// triple (§6).
func buildHeuristic(name string, attrs []string) (search.Heuristic, error) {
	switch strings.ToUpper(name) {
	case "HAMMINGDISTANCE":
		return search.Hamming(), nil
	case "MANHATTANDISTANCE":
		if len(attrs) != 3 {
			return nil, &CommandError{Kind: BadArguments, Text: "MANHATTANDISTANCE requires value_attr,x_attr,y_attr"}
		}
		return search.Manhattan(attrs[0], attrs[1], attrs[2]), nil
	case "LINEARCONFLICT":
		if len(attrs) != 3 {
			return nil, &CommandError{Kind: BadArguments, Text: "LINEARCONFLICT requires value_attr,x_attr,y_attr"}
		}
		return search.LinearConflict(attrs[0], attrs[1], attrs[2]), nil
	default:
		return nil, &CommandError{Kind: BadArguments, Text: "unknown heuristic " + name}
	}
}
