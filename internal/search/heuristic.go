package search

import (
	"expertsys/internal/container"
	"expertsys/internal/value"
)

// Heuristic estimates the distance from node to goal for A* and best-first
// search (§4.G).
type Heuristic func(node *container.FactContainer, goal *container.GoalContainer) int

// Hamming counts facts in node whose value differs from the goal's fact of
// the same name.
func Hamming() Heuristic {
	return func(node *container.FactContainer, goal *container.GoalContainer) int {
		count := 0
		for _, name := range goal.Names() {
			gf, _ := goal.Get(name)
			nf, err := node.Get(name)
			if err != nil || !nf.Equal(gf) {
				count++
			}
		}
		return count
	}
}

// Manhattan sums |node.x - goal.x| + |node.y - goal.y| over fact pairs
// sharing the same value at valueAttr, parameterised by (valueAttr, xAttr,
// yAttr).
func Manhattan(valueAttr, xAttr, yAttr string) Heuristic {
	return func(node *container.FactContainer, goal *container.GoalContainer) int {
		return manhattanSum(node, goal, valueAttr, xAttr, yAttr)
	}
}

func manhattanSum(node *container.FactContainer, goal *container.GoalContainer, valueAttr, xAttr, yAttr string) int {
	total := 0
	for _, nf := range node.Facts() {
		nv, ok := nf.Get(valueAttr)
		if !ok {
			continue
		}
		for _, gname := range goal.Names() {
			gf, _ := goal.Get(gname)
			gv, ok := gf.Get(valueAttr)
			if !ok || !nv.Equal(gv) {
				continue
			}
			nx, okx := nf.Get(xAttr)
			ny, oky := nf.Get(yAttr)
			gx, okgx := gf.Get(xAttr)
			gy, okgy := gf.Get(yAttr)
			if !okx || !oky || !okgx || !okgy {
				continue
			}
			total += absInt(nx, gx) + absInt(ny, gy)
		}
	}
	return total
}

func absInt(a, b value.Value) int {
	d := a.AsFloat() - b.AsFloat()
	if d < 0 {
		d = -d
	}
	return int(d)
}

// LinearConflict adds 2 per conflicting pair of facts sharing a row
// (identical x, differing y from their goals) to the Manhattan distance.
func LinearConflict(valueAttr, xAttr, yAttr string) Heuristic {
	return func(node *container.FactContainer, goal *container.GoalContainer) int {
		base := manhattanSum(node, goal, valueAttr, xAttr, yAttr)
		return base + 2*rowConflicts(node, goal, valueAttr, xAttr, yAttr)
	}
}

// rowConflicts tallies, per shared x ("row"), the y-offsets |node.y -
// goal.y|; any offset value occurring exactly twice contributes one
// conflict (§4.G).
func rowConflicts(node *container.FactContainer, goal *container.GoalContainer, valueAttr, xAttr, yAttr string) int {
	rows := make(map[int][]int)
	for _, nf := range node.Facts() {
		nv, ok := nf.Get(valueAttr)
		if !ok {
			continue
		}
		for _, gname := range goal.Names() {
			gf, _ := goal.Get(gname)
			gv, ok := gf.Get(valueAttr)
			if !ok || !nv.Equal(gv) {
				continue
			}
			nx, okx := nf.Get(xAttr)
			ny, oky := nf.Get(yAttr)
			gx, okgx := gf.Get(xAttr)
			gy, okgy := gf.Get(yAttr)
			if !okx || !oky || !okgx || !okgy || nx.AsFloat() != gx.AsFloat() || ny.AsFloat() == gy.AsFloat() {
				continue
			}
			offset := absInt(ny, gy)
			row := int(nx.AsFloat())
			rows[row] = append(rows[row], offset)
		}
	}

	conflicts := 0
	for _, offsets := range rows {
		counts := make(map[int]int)
		for _, o := range offsets {
			counts[o]++
		}
		for _, c := range counts {
			if c == 2 {
				conflicts++
			}
		}
	}
	return conflicts
}
