// Package memtree contains the request types and content source interfaces
// shared by the loaders and drivers built around the in-memory tree.
package memtree

import (
	"context"
	"io"
)

// ContentAdapter retrieves the initial content of a file node from some
// source. Instances are 1:1 with the source config they were built from.
type ContentAdapter interface {
	// Opens the source and returns a Reader over its full content
	Open(ctx context.Context) (io.ReadCloser, error)
}

// AdapterProvider is a factory for concrete [ContentAdapter] implementations
// built from a raw JSON source config.
type AdapterProvider interface {
	NewAdapter(config []byte) (ContentAdapter, error)
}

// ContentSource pairs an adapter with its priority within a request
type ContentSource struct {
	Adapter  ContentAdapter
	Priority int // Lower number = higher priority
}
