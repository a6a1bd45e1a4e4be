// Package tree implements an in-memory namespace of directories and files
// addressed by absolute slash separated paths.
//
// A Tree is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves.
package tree

import (
	"errors"
	"strings"
)

// RootName is the name of the root directory and the path that resolves to it
const RootName = "/"

type Tree struct {
	root *Node
}

// New creates a Tree holding only the root directory.
func New() *Tree {
	return &Tree{root: NewNode(RootName, Directory)}
}

func (t *Tree) Root() *Node {
	return t.root
}

// Resolve walks the tree from the root and returns the node named by path.
//
// "/" is the root. Any other path has its first character dropped and the
// remainder split on "/"; each segment selects the first child with that
// name. Segments are matched literally, so a trailing slash looks up a child
// named "" and normally fails.
func (t *Tree) Resolve(path string) (*Node, error) {
	n, err := t.resolve(path)
	if err != nil {
		return nil, &Error{Op: OpResolve, Path: path, Err: err}
	}
	return n, nil
}

func (t *Tree) resolve(path string) (*Node, error) {
	cur := t.root
	if path == RootName {
		return cur, nil
	}
	if len(path) < 2 {
		// "" or a lone non-slash character has nothing left to walk
		return nil, ErrPathNotFound
	}
	for _, seg := range strings.Split(path[1:], "/") {
		next, ok := cur.child(seg)
		if !ok {
			return nil, ErrPathNotFound
		}
		cur = next
	}
	return cur, nil
}

// Add creates a node named name below the directory at parentPath and
// returns it. Sibling names are not checked for uniqueness; a duplicate is
// attached after the existing one and is shadowed by it during resolution.
func (t *Tree) Add(parentPath, name string, kind Kind) (*Node, error) {
	parent, err := t.resolve(parentPath)
	if err != nil {
		return nil, &Error{Op: OpAdd, Path: parentPath, Err: err}
	}
	node := NewNode(name, kind)
	if err := parent.AttachChild(node); err != nil {
		return nil, &Error{Op: OpAdd, Path: parentPath, Err: errors.Unwrap(err)}
	}
	return node, nil
}

// Write appends content to the file at path. Existing content is never
// replaced.
func (t *Tree) Write(path string, content []byte) error {
	n, err := t.resolve(path)
	if err != nil {
		return &Error{Op: OpWrite, Path: path, Err: err}
	}
	if n.IsDir() {
		return &Error{Op: OpWrite, Path: path, Err: ErrIsADirectory}
	}
	n.content = append(n.content, content...)
	return nil
}

// WriteString is Write for string content
func (t *Tree) WriteString(path, content string) error {
	return t.Write(path, []byte(content))
}

// Read returns a copy of the full content of the file at path.
func (t *Tree) Read(path string) ([]byte, error) {
	n, err := t.resolve(path)
	if err != nil {
		return nil, &Error{Op: OpRead, Path: path, Err: err}
	}
	if n.IsDir() {
		return nil, &Error{Op: OpRead, Path: path, Err: ErrIsADirectory}
	}
	out := make([]byte, len(n.content))
	copy(out, n.content)
	return out, nil
}

// List returns the children of the directory at path in insertion order.
func (t *Tree) List(path string) ([]*Node, error) {
	n, err := t.resolve(path)
	if err != nil {
		return nil, &Error{Op: OpList, Path: path, Err: err}
	}
	if !n.IsDir() {
		return nil, &Error{Op: OpList, Path: path, Err: ErrNotADirectory}
	}
	return n.Children(), nil
}
