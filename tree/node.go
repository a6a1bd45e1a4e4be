package tree

import "fmt"

// Kind distinguishes directories from files. It is fixed when a Node is created.
type Kind uint8

const (
	Directory Kind = iota
	File
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "dir"
	case File:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts "dir" or "file" into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "dir":
		return Directory, nil
	case "file":
		return File, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Node is a single tree entry. Directories own their children in insertion
// order; files own an append-only content buffer. A node never references
// its parent.
type Node struct {
	name     string
	kind     Kind
	children []*Node // nil for File nodes
	content  []byte  // nil for Directory nodes
}

// NewNode creates an unattached node. The name is not validated; callers
// supply well formed segments.
func NewNode(name string, kind Kind) *Node {
	return &Node{name: name, kind: kind}
}

// AttachChild appends child to the node's children and takes ownership of it.
func (n *Node) AttachChild(child *Node) error {
	if n.kind != Directory {
		return &Error{Op: OpAttach, Path: n.name, Err: ErrNotADirectory}
	}
	n.children = append(n.children, child)
	return nil
}

func (n *Node) Name() string { return n.name }

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsDir() bool { return n.kind == Directory }

// Children returns a copy of the child slice in insertion order.
// Files always return an empty slice.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Size returns the content length in bytes; 0 for directories
func (n *Node) Size() int {
	return len(n.content)
}

// child returns the first child named name
func (n *Node) child(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}
