package server

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/brettbedarf/memtree/internal/util"
	"github.com/brettbedarf/memtree/tree"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// dirNode bridges a tree directory to go-fuse. Nodes only remember their
// path; every operation resolves it again through the MemTree.
type dirNode struct {
	fs.Inode
	mt   *MemTree
	path string
}

var (
	_ fs.NodeLookuper  = (*dirNode)(nil)
	_ fs.NodeReaddirer = (*dirNode)(nil)
	_ fs.NodeGetattrer = (*dirNode)(nil)
	_ fs.NodeMkdirer   = (*dirNode)(nil)
	_ fs.NodeCreater   = (*dirNode)(nil)
)

// fileNode bridges a tree file to go-fuse. Content is append-only: writes
// must land at the current end of file and truncation is refused.
type fileNode struct {
	fs.Inode
	mt   *MemTree
	path string
}

var (
	_ fs.NodeGetattrer = (*fileNode)(nil)
	_ fs.NodeSetattrer = (*fileNode)(nil)
	_ fs.NodeOpener    = (*fileNode)(nil)
	_ fs.NodeReader    = (*fileNode)(nil)
	_ fs.NodeWriter    = (*fileNode)(nil)
)

func (d *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	p := joinPath(d.path, name)
	e, err := d.mt.Stat(p)
	if err != nil {
		return nil, toErrno(err)
	}
	return d.mt.newChild(ctx, &d.Inode, p, e, out), fs.OK
}

// Readdir lists children in insertion order. Only the first of several
// siblings sharing a name is listed since only it can be looked up.
func (d *dirNode) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	logger := util.GetLogger("Fuse.Readdir")
	logger.Trace().Str("path", d.path).Msg("Readdir called")

	entries, err := d.mt.List(d.path)
	if err != nil {
		return nil, toErrno(err)
	}
	seen := make(map[string]struct{}, len(entries))
	list := make([]fuse.DirEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		list = append(list, fuse.DirEntry{
			Name: e.Name,
			Mode: modeOf(e.Kind),
			Ino:  d.mt.inos.ino(joinPath(d.path, e.Name)),
		})
	}
	return fs.NewListDirStream(list), fs.OK
}

func (d *dirNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	e, err := d.mt.Stat(d.path)
	if err != nil {
		return toErrno(err)
	}
	d.mt.fillAttr(d.path, e, &out.Attr)
	out.SetTimeout(seconds(d.mt.cfg.AttrTimeout))
	return fs.OK
}

func (d *dirNode) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return d.add(ctx, name, tree.Directory, out)
}

func (d *dirNode) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	child, errno := d.add(ctx, name, tree.File, out)
	if errno != fs.OK {
		return nil, nil, 0, errno
	}
	return child, nil, d.mt.openFlags(), fs.OK
}

func (d *dirNode) add(ctx context.Context, name string, kind tree.Kind, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	logger := util.GetLogger("Fuse.Add")

	if err := d.mt.Add(d.path, name, kind); err != nil {
		logger.Debug().Err(err).Str("parent", d.path).Str("name", name).Msg("Add failed")
		return nil, toErrno(err)
	}
	p := joinPath(d.path, name)
	// a duplicate name resolves to the older sibling
	e, err := d.mt.Stat(p)
	if err != nil {
		return nil, toErrno(err)
	}
	logger.Debug().Str("path", p).Str("kind", kind.String()).Msg("Added node")
	return d.mt.newChild(ctx, &d.Inode, p, e, out), fs.OK
}

func (f *fileNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	e, err := f.mt.Stat(f.path)
	if err != nil {
		return toErrno(err)
	}
	f.mt.fillAttr(f.path, e, &out.Attr)
	out.SetTimeout(seconds(f.mt.cfg.AttrTimeout))
	return fs.OK
}

// Setattr accepts everything except a size change; timestamps and modes are
// not stored and are reported unchanged.
func (f *fileNode) Setattr(ctx context.Context, fh fs.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	e, err := f.mt.Stat(f.path)
	if err != nil {
		return toErrno(err)
	}
	if size, ok := in.GetSize(); ok && size != uint64(e.Size) {
		return syscall.EPERM
	}
	f.mt.fillAttr(f.path, e, &out.Attr)
	return fs.OK
}

func (f *fileNode) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&syscall.O_TRUNC != 0 {
		e, err := f.mt.Stat(f.path)
		if err != nil {
			return nil, 0, toErrno(err)
		}
		if e.Size > 0 {
			return nil, 0, syscall.EPERM
		}
	}
	return nil, f.mt.openFlags(), fs.OK
}

func (f *fileNode) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := f.mt.Read(f.path)
	if err != nil {
		return nil, toErrno(err)
	}
	if off >= int64(len(data)) {
		return fuse.ReadResultData(nil), fs.OK
	}
	end := min(off+int64(len(dest)), int64(len(data)))
	return fuse.ReadResultData(data[off:end]), fs.OK
}

func (f *fileNode) Write(ctx context.Context, fh fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	logger := util.GetLogger("Fuse.Write")

	size, ok, err := f.mt.AppendAt(f.path, data, off)
	if err != nil {
		return 0, toErrno(err)
	}
	if !ok {
		logger.Debug().Str("path", f.path).Int64("offset", off).Int("size", size).Msg("Rejected non-append write")
		return 0, syscall.EINVAL
	}
	return uint32(len(data)), fs.OK
}

// newChild creates (or reuses) the inode for the node at path and fills out
func (m *MemTree) newChild(ctx context.Context, parent *fs.Inode, path string, e Entry, out *fuse.EntryOut) *fs.Inode {
	var embedder fs.InodeEmbedder
	if e.Kind == tree.Directory {
		embedder = &dirNode{mt: m, path: path}
	} else {
		embedder = &fileNode{mt: m, path: path}
	}
	m.fillAttr(path, e, &out.Attr)
	out.SetEntryTimeout(seconds(m.cfg.EntryTimeout))
	out.SetAttrTimeout(seconds(m.cfg.AttrTimeout))
	return parent.NewInode(ctx, embedder, fs.StableAttr{Mode: modeOf(e.Kind), Ino: m.inos.ino(path)})
}

// fillAttr sets the attributes reported for the node at path. Times are the
// tree's creation time since nodes carry no timestamps.
func (m *MemTree) fillAttr(path string, e Entry, attr *fuse.Attr) {
	perms := uint32(filePerms)
	if e.Kind == tree.Directory {
		perms = dirPerms
	}
	attr.Ino = m.inos.ino(path)
	attr.Mode = modeOf(e.Kind) | perms
	attr.Size = uint64(e.Size)
	attr.Blocks = (attr.Size + 511) / 512
	attr.Nlink = 1
	attr.Owner = fuse.Owner{
		Uid: uint32(os.Getuid()),
		Gid: uint32(os.Getgid()),
	}
	attr.Atime = uint64(m.created.Unix())
	attr.Mtime = attr.Atime
	attr.Ctime = attr.Atime
	attr.Atimensec = uint32(m.created.Nanosecond())
	attr.Mtimensec = attr.Atimensec
	attr.Ctimensec = attr.Atimensec
	attr.Blksize = 4096 // preferred size for fs ops
}

func (m *MemTree) openFlags() uint32 {
	if m.cfg.DirectIO {
		return fuse.FOPEN_DIRECT_IO
	}
	return 0
}

func modeOf(k tree.Kind) uint32 {
	if k == tree.Directory {
		return fuse.S_IFDIR
	}
	return fuse.S_IFREG
}

func joinPath(dir, name string) string {
	if dir == tree.RootName {
		return dir + name
	}
	return dir + "/" + name
}

// toErrno converts tree errors to the errno FUSE expects
func toErrno(err error) syscall.Errno {
	switch {
	case err == nil:
		return fs.OK
	case errors.Is(err, tree.ErrPathNotFound):
		return syscall.ENOENT
	case errors.Is(err, tree.ErrNotADirectory):
		return syscall.ENOTDIR
	case errors.Is(err, tree.ErrIsADirectory):
		return syscall.EISDIR
	default:
		return syscall.EIO
	}
}
