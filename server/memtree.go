package server

import (
	"iter"
	"sync"
	"time"

	"github.com/brettbedarf/memtree/config"
	"github.com/brettbedarf/memtree/tree"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Entry is a snapshot of one node's metadata
type Entry struct {
	Name string
	Kind tree.Kind
	Size int
}

// MemTree owns a [tree.Tree] and serializes every access to it, so it can be
// shared between the loader, the CLI and the FUSE server goroutines.
type MemTree struct {
	cfg     *config.Config
	mu      sync.Mutex // Protects tree
	tree    *tree.Tree
	inos    *inoRegistry
	created time.Time
	server  *fuse.Server
}

// New creates a MemTree holding an empty tree
func New(cfg *config.Config) *MemTree {
	return &MemTree{
		cfg:     cfg,
		tree:    tree.New(),
		inos:    newInoRegistry(),
		created: time.Now(),
	}
}

// Add creates a node below the directory at parentPath. See [tree.Tree.Add].
func (m *MemTree) Add(parentPath, name string, kind tree.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.tree.Add(parentPath, name, kind)
	return err
}

// Write appends content to the file at path. See [tree.Tree.Write].
func (m *MemTree) Write(path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Write(path, content)
}

// AppendAt appends data to the file at path only when off is the current
// end of the file. It returns the new size; ok is false when off does not
// match and nothing was written.
func (m *MemTree) AppendAt(path string, data []byte, off int64) (size int, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.tree.Resolve(path)
	if err != nil {
		return 0, false, err
	}
	if n.IsDir() {
		// let the tree report the kind mismatch
		return 0, false, m.tree.Write(path, data)
	}
	if off != int64(n.Size()) {
		return n.Size(), false, nil
	}
	if err := m.tree.Write(path, data); err != nil {
		return 0, false, err
	}
	return n.Size(), true, nil
}

// Read returns a snapshot of the content of the file at path
func (m *MemTree) Read(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Read(path)
}

// Stat returns metadata of the node at path
func (m *MemTree) Stat(path string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.tree.Resolve(path)
	if err != nil {
		return Entry{}, err
	}
	return entryOf(n), nil
}

// List returns metadata of the children of the directory at path in
// insertion order, duplicates included.
func (m *MemTree) List(path string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	children, err := m.tree.List(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(children))
	for _, c := range children {
		entries = append(entries, entryOf(c))
	}
	return entries, nil
}

// Enumerate returns the (depth, name) pairs of the whole tree. The pairs are
// collected under the lock, so the returned sequence is a stable snapshot
// and can be consumed without holding it.
func (m *MemTree) Enumerate() iter.Seq2[int, string] {
	type pair struct {
		depth int
		name  string
	}
	m.mu.Lock()
	var pairs []pair
	for d, n := range m.tree.Enumerate() {
		pairs = append(pairs, pair{d, n})
	}
	m.mu.Unlock()

	return func(yield func(int, string) bool) {
		for _, p := range pairs {
			if !yield(p.depth, p.name) {
				return
			}
		}
	}
}

func entryOf(n *tree.Node) Entry {
	return Entry{Name: n.Name(), Kind: n.Kind(), Size: n.Size()}
}
