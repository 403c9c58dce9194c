package search

import (
	"expertsys/internal/agenda"
	"expertsys/internal/container"
	"expertsys/internal/entity"
)

const defaultMaxDepth = 1000

// expand runs the shared per-node procedure (§4.G, steps 3-5): binds and
// evaluates the rule base against n.state, drains the agenda, and returns
// every novel successor not already in closed. closed is updated in place.
func expand(bc *bindCache, rules *container.RuleContainer, n searchNode, maxDepth int, closed map[string]bool) ([]searchNode, error) {
	if len(n.path) >= maxDepth {
		return nil, nil
	}

	fireable, err := fireableRules(bc, rules, n.state)
	if err != nil {
		return nil, err
	}

	ag := agenda.New()
	for _, r := range fireable {
		ag.Push(r)
	}

	var successors []searchNode
	for {
		r, ok := ag.Pop()
		if !ok {
			break
		}
		next, err := applyConsequent(r.Consequent, n.state)
		if err != nil {
			return nil, err
		}
		key := next.HashKey()
		if closed[key] {
			continue
		}
		closed[key] = true

		path := make([]entity.Rule, len(n.path)+1)
		copy(path, n.path)
		path[len(n.path)] = r
		successors = append(successors, searchNode{state: next, path: path})
	}
	return successors, nil
}

func resolveMaxDepth(maxDepth int) int {
	if maxDepth <= 0 {
		return defaultMaxDepth
	}
	return maxDepth
}

// BFS explores the state graph in arrival order, shortest-path-first by
// edge count (§4.G).
func BFS(initial *container.FactContainer, rules *container.RuleContainer, goal *container.GoalContainer, maxDepth int) (Result, error) {
	maxDepth = resolveMaxDepth(maxDepth)
	closed := map[string]bool{initial.HashKey(): true}
	open := []searchNode{{state: initial, path: nil}}
	bc := &bindCache{}
	visited := 0

	for len(open) > 0 {
		n := open[0]
		open = open[1:]

		if goalReached(n.state, goal) {
			return Result{State: n.state, Path: n.path, Visited: visited, Found: true}, nil
		}
		visited++

		successors, err := expand(bc, rules, n, maxDepth, closed)
		if err != nil {
			return Result{}, err
		}
		open = append(open, successors...)
	}
	return Result{Visited: visited, Found: false}, nil
}

// DFS explores the state graph depth-first (LIFO stack).
func DFS(initial *container.FactContainer, rules *container.RuleContainer, goal *container.GoalContainer, maxDepth int) (Result, error) {
	maxDepth = resolveMaxDepth(maxDepth)
	closed := map[string]bool{initial.HashKey(): true}
	stack := []searchNode{{state: initial, path: nil}}
	bc := &bindCache{}
	visited := 0

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if goalReached(n.state, goal) {
			return Result{State: n.state, Path: n.path, Visited: visited, Found: true}, nil
		}
		visited++

		successors, err := expand(bc, rules, n, maxDepth, closed)
		if err != nil {
			return Result{}, err
		}
		stack = append(stack, successors...)
	}
	return Result{Visited: visited, Found: false}, nil
}

// AStar explores the state graph ordered by g + h(S, goal), where g is the
// depth of the *parent* path (len(path), not len(path)+1 — an observable
// quirk preserved for behavioral fidelity, §4.G).
func AStar(initial *container.FactContainer, rules *container.RuleContainer, goal *container.GoalContainer, h Heuristic, maxDepth int) (Result, error) {
	return bestOrdered(initial, rules, goal, maxDepth, func(parentPathLen int, succ searchNode) float64 {
		return float64(parentPathLen) + float64(h(succ.state, goal))
	})
}

// BestFirst explores the state graph ordered purely by h(S, goal).
func BestFirst(initial *container.FactContainer, rules *container.RuleContainer, goal *container.GoalContainer, h Heuristic, maxDepth int) (Result, error) {
	return bestOrdered(initial, rules, goal, maxDepth, func(_ int, succ searchNode) float64 {
		return float64(h(succ.state, goal))
	})
}

// bestOrdered is the shared min-heap-driven loop for A* and best-first;
// they differ only in the key function applied to each successor.
func bestOrdered(initial *container.FactContainer, rules *container.RuleContainer, goal *container.GoalContainer, maxDepth int, keyFn func(parentPathLen int, succ searchNode) float64) (Result, error) {
	maxDepth = resolveMaxDepth(maxDepth)
	closed := map[string]bool{initial.HashKey(): true}
	open := newOpenHeap()
	open.push(searchNode{state: initial, path: nil}, 0)
	bc := &bindCache{}
	visited := 0

	for !open.empty() {
		n, ok := open.pop()
		if !ok {
			break
		}

		if goalReached(n.state, goal) {
			return Result{State: n.state, Path: n.path, Visited: visited, Found: true}, nil
		}
		visited++

		successors, err := expand(bc, rules, n, maxDepth, closed)
		if err != nil {
			return Result{}, err
		}
		for _, s := range successors {
			open.push(s, keyFn(len(n.path), s))
		}
	}
	return Result{Visited: visited, Found: false}, nil
}
