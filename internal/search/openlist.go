package search

import (
	"container/heap"

	"expertsys/internal/container"
	"expertsys/internal/entity"
)

// searchNode is an entry in any open list: a reachable state plus the path
// of rules fired to reach it.
type searchNode struct {
	state *container.FactContainer
	path  []entity.Rule
}

// priorityItem is a searchNode keyed for the A* / best-first min-heap.
// Insertion sequence breaks ties, per §5's reproducibility requirement.
type priorityItem struct {
	node searchNode
	key  float64
	seq  int
}

type priorityQueue []*priorityItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(*priorityItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// openHeap wraps priorityQueue with a monotonic sequence counter so callers
// never have to track it themselves.
type openHeap struct {
	pq      priorityQueue
	nextSeq int
}

func newOpenHeap() *openHeap {
	oh := &openHeap{}
	heap.Init(&oh.pq)
	return oh
}

func (oh *openHeap) push(n searchNode, key float64) {
	oh.nextSeq++
	heap.Push(&oh.pq, &priorityItem{node: n, key: key, seq: oh.nextSeq})
}

func (oh *openHeap) pop() (searchNode, bool) {
	if oh.pq.Len() == 0 {
		return searchNode{}, false
	}
	item := heap.Pop(&oh.pq).(*priorityItem)
	return item.node, true
}

func (oh *openHeap) empty() bool { return oh.pq.Len() == 0 }
