package memtree

// NodeType valid types are FileNodeType "file", DirNodeType "dir"
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// NodeRequest describes one node to add below an existing directory.
// It is produced by loaders (i.e. seed files) and consumed by drivers.
type NodeRequest struct {
	ID      string // Request ID used to correlate logs (Default random UUID)
	Parent  string // Absolute path of the parent directory
	Name    string
	Type    NodeType
	Content string          // Inline content written first; files only
	Sources []ContentSource // Additional content; the first that opens is appended
}

// Path returns the path the node will be reachable at once added
func (r *NodeRequest) Path() string {
	if r.Parent == "/" {
		return "/" + r.Name
	}
	return r.Parent + "/" + r.Name
}
