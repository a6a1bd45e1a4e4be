package server

import (
	"sync/atomic"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"
)

// inoRegistry hands out stable inode numbers keyed by path. Duplicate
// sibling names share a path and therefore an inode, which matches the
// first-match rule of path resolution.
type inoRegistry struct {
	lastIno atomic.Uint64 // Last Ino assigned
	byPath  *xsync.Map[string, uint64]
}

func newInoRegistry() *inoRegistry {
	r := &inoRegistry{byPath: xsync.NewMap[string, uint64]()}
	r.lastIno.Store(fuse.FUSE_ROOT_ID)
	r.byPath.Store("/", fuse.FUSE_ROOT_ID)
	return r
}

// ino returns the inode number for path, allocating one on first use.
func (r *inoRegistry) ino(path string) uint64 {
	// fast path
	if id, ok := r.byPath.Load(path); ok {
		return id
	}
	// a racing caller may win; its number is kept and ours is skipped
	id, _ := r.byPath.LoadOrStore(path, r.lastIno.Add(1))
	return id
}
