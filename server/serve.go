package server

import (
	"github.com/brettbedarf/memtree/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Serve mounts the tree at mountPoint and returns once the mount is ready.
// Requests are served in the background until [MemTree.Unmount].
func (m *MemTree) Serve(mountPoint string) error {
	logger := util.GetLogger("MemTree.Serve")

	root := &dirNode{mt: m, path: "/"}
	attrTimeout := seconds(m.cfg.AttrTimeout)
	entryTimeout := seconds(m.cfg.EntryTimeout)
	srv, err := fs.Mount(mountPoint, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			Name:   m.cfg.Name,
			FsName: m.cfg.FsName,
			Debug:  m.cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.DebugLevel),
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
	})
	if err != nil {
		return err
	}
	m.server = srv
	logger.Debug().Str("mountpoint", mountPoint).Msg("Mounted")
	return nil
}

// Unmount cleanly unmounts the filesystem.
func (m *MemTree) Unmount() error {
	if m.server == nil {
		return nil
	}
	return m.server.Unmount()
}
