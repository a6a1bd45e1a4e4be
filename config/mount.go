package config

// MountOptions holds high-level settings for mounting the tree with FUSE.
// No go-fuse types are exposed here.
type MountOptions struct {
	FsName string // mount's FsName shown in mount tables
	Name   string // mount's Name (fuse.<Name> type)
}
