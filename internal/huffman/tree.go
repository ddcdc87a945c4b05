package huffman

import (
	"container/heap"
	"fmt"
)

// node is a Huffman tree node. A node is a leaf iff it has no children.
// weight and seq are only used while building from frequencies.
type node struct {
	symbol      Symbol
	left, right *node
	weight      int
	seq         int
}

func (n *node) isLeaf() bool { return n.left == nil && n.right == nil }

// nodeHeap is a min-heap ordered by weight, then by insertion sequence.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// buildTree combines the two lightest nodes until one remains. The first node
// popped becomes the left child. Leaves enter the heap in ascending byte
// order with the terminator last, so equal weights resolve the same way on
// every run.
func buildTree(ft *FrequencyTable) *node {
	syms := ft.Symbols()
	h := make(nodeHeap, 0, len(syms))
	seq := 0
	for _, s := range syms {
		h = append(h, &node{symbol: s, weight: ft.Count(s), seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		heap.Push(&h, &node{weight: a.weight + b.weight, seq: seq, left: a, right: b})
		seq++
	}

	root := heap.Pop(&h).(*node)
	if root.isLeaf() {
		// Only the terminator: give it a one-bit code.
		root = &node{weight: root.weight, left: root}
	}
	return root
}

// buildTreeFromCodeTable rebuilds a tree by walking every code from an empty
// root, creating internal nodes on demand.
func buildTreeFromCodeTable(ct *CodeTable) (*node, error) {
	root := &node{}
	for _, e := range ct.entries {
		if err := attach(root, e.Symbol, e.Code); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func attach(root *node, sym Symbol, code Code) error {
	if len(code) == 0 {
		return fmt.Errorf("symbol %s: %w", sym, ErrEmptyCodePath)
	}

	cur := root
	for i, bit := range code {
		slot := &cur.left
		if bit == 1 {
			slot = &cur.right
		}

		if i == len(code)-1 {
			if *slot != nil {
				return fmt.Errorf("symbol %s code %s ends on an occupied node: %w", sym, code, ErrCodeConflict)
			}
			*slot = &node{symbol: sym}
			return nil
		}

		switch {
		case *slot == nil:
			*slot = &node{}
		case (*slot).isLeaf():
			return fmt.Errorf("symbol %s code %s passes through leaf %s: %w", sym, code, (*slot).symbol, ErrCodeConflict)
		}
		cur = *slot
	}
	return nil
}
