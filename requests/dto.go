package requests

import "github.com/brettbedarf/memtree"

// NodeRequestDTO is the JSON/YAML representation of [memtree.NodeRequest]
// as found in seed files.
type NodeRequestDTO struct {
	ID      *string           `json:"id,omitempty"` // Optional ID to correlate logs (Default random UUID)
	Parent  string            `json:"parent"`
	Name    string            `json:"name"`
	Type    memtree.NodeType  `json:"type"`
	Content *string           `json:"content,omitempty"` // Files only
	Sources []SourceConfigDTO `json:"sources,omitempty"` // Files only
}

// nodeRequestYAML is the YAML form of [NodeRequestDTO]. Scalar fields are
// strings so unquoted values like 2024 or true keep their literal text.
type nodeRequestYAML struct {
	ID      *string          `yaml:"id" json:"id,omitempty"`
	Parent  string           `yaml:"parent" json:"parent"`
	Name    string           `yaml:"name" json:"name"`
	Type    memtree.NodeType `yaml:"type" json:"type"`
	Content *string          `yaml:"content" json:"content,omitempty"`
	Sources []map[string]any `yaml:"sources" json:"sources,omitempty"`
}

// SourceConfigDTO is the JSON representation of static source config fields
//
// Additional fields depend on the "type" value:
//
// Ex. For type="http" (see [adapters.HTTPSource]):
//
//	URL     string            `json:"url"`
//	Method  *string           `json:"method,omitempty"`
//	Headers map\[string\]string `json:"headers,omitempty"`
//
// Ex. For type="inline" (see [adapters.InlineSource]):
//
//	Text string `json:"text"`
type SourceConfigDTO struct {
	Type     string `json:"type"`
	Priority *int   `json:"priority,omitempty"` // Lower number = higher priority, defaults to array index
}
