package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/brettbedarf/memtree"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps a source "type" key to the provider that builds its adapters.
// It is safe for concurrent use.
type Registry struct {
	providers *xsync.Map[string, memtree.AdapterProvider]
}

func NewRegistry() *Registry {
	return &Registry{providers: xsync.NewMap[string, memtree.AdapterProvider]()}
}

// Register ties a provider to a "type" key. The first registration for a key
// wins; later ones are ignored.
func (r *Registry) Register(adapterType string, provider memtree.AdapterProvider) {
	r.providers.LoadOrStore(adapterType, provider)
}

// GetProvider returns the provider registered for adapterType
func (r *Registry) GetProvider(adapterType string) (memtree.AdapterProvider, error) {
	p, ok := r.providers.Load(adapterType)
	if !ok {
		return nil, fmt.Errorf("no provider registered for %q", adapterType)
	}
	return p, nil
}

// NewAdapter picks the provider based on the config's "type" field and
// passes it the full raw config.
func (r *Registry) NewAdapter(raw []byte) (memtree.ContentAdapter, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	if meta.Type == "" {
		return nil, fmt.Errorf("source config has no type")
	}
	p, err := r.GetProvider(meta.Type)
	if err != nil {
		return nil, err
	}
	return p.NewAdapter(raw)
}
