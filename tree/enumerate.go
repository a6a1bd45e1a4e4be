package tree

import "iter"

// Enumerate yields (depth, name) for every node in the tree, starting with
// the root at depth 0. See EnumerateFrom.
func (t *Tree) Enumerate() iter.Seq2[int, string] {
	return EnumerateFrom(t.root)
}

// EnumerateFrom yields (depth, name) for n and then each descendant in
// depth-first pre-order: a child's subtree is finished before its next
// sibling is visited. n is reported at depth 0.
//
// The sequence has no side effects and stops as soon as the consumer does.
func EnumerateFrom(n *Node) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		walk(n, 0, yield)
	}
}

func walk(n *Node, depth int, yield func(int, string) bool) bool {
	if !yield(depth, n.name) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, depth+1, yield) {
			return false
		}
	}
	return true
}
