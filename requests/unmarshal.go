package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memtree"
	"github.com/brettbedarf/memtree/adapters"
)

// UnmarshalNodeRequest converts one JSON seed entry into a request. Sources
// are built through reg and sorted by priority.
func UnmarshalNodeRequest(data []byte, reg *adapters.Registry) (*memtree.NodeRequest, error) {
	var dto NodeRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	if err := validate(&dto); err != nil {
		return nil, err
	}

	sources, err := unmarshalSources(dto.Sources, data, reg)
	if err != nil {
		return nil, fmt.Errorf("entry %s/%s: %w", dto.Parent, dto.Name, err)
	}

	return &memtree.NodeRequest{
		ID:      valueOrDefault(dto.ID, uuid.New().String()),
		Parent:  dto.Parent,
		Name:    dto.Name,
		Type:    dto.Type,
		Content: valueOrDefault(dto.Content, ""),
		Sources: sources,
	}, nil
}

// UnmarshalJSON converts a JSON array of seed entries, preserving order
func UnmarshalJSON(data []byte, reg *adapters.Registry) ([]*memtree.NodeRequest, error) {
	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}

	reqs := make([]*memtree.NodeRequest, 0, len(rawNodes))
	for i, raw := range rawNodes {
		req, err := UnmarshalNodeRequest(raw, reg)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// UnmarshalYAML converts a YAML sequence of seed entries. Entries use the
// same keys as the JSON form.
func UnmarshalYAML(data []byte, reg *adapters.Registry) ([]*memtree.NodeRequest, error) {
	var nodes []nodeRequestYAML
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	// Re-encode so source configs reach the adapter providers as JSON
	asJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to convert nodes: %w", err)
	}
	return UnmarshalJSON(asJSON, reg)
}

// LoadFile reads a seed file. Supports both YAML (.yaml, .yml) and JSON
// (.json) formats.
func LoadFile(path string, reg *adapters.Registry) ([]*memtree.NodeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return UnmarshalYAML(data, reg)
	case ".json":
		return UnmarshalJSON(data, reg)
	default:
		return nil, fmt.Errorf("unknown nodes file extension: %s", path)
	}
}

func validate(dto *NodeRequestDTO) error {
	if !strings.HasPrefix(dto.Parent, "/") {
		return fmt.Errorf("parent %q must be an absolute path", dto.Parent)
	}
	if dto.Name == "" {
		return fmt.Errorf("entry below %s has no name", dto.Parent)
	}
	switch dto.Type {
	case memtree.FileNodeType:
	case memtree.DirNodeType:
		if dto.Content != nil || len(dto.Sources) > 0 {
			return fmt.Errorf("directory %s/%s cannot have content", dto.Parent, dto.Name)
		}
	default:
		return fmt.Errorf("unknown node type %q", dto.Type)
	}
	return nil
}

// Helper function to process sources array
func unmarshalSources(sourceDTOs []SourceConfigDTO, rawData []byte, reg *adapters.Registry) ([]memtree.ContentSource, error) {
	if len(sourceDTOs) == 0 {
		return nil, nil
	}
	// Raw sources are passed whole to the registry so providers see their own fields
	var rawMessage struct {
		Sources []json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(rawData, &rawMessage); err != nil {
		return nil, err
	}

	sources := make([]memtree.ContentSource, 0, len(rawMessage.Sources))
	for i, rawSource := range rawMessage.Sources {
		adapter, err := reg.NewAdapter(rawSource)
		if err != nil {
			return nil, err
		}

		priority := i
		if sourceDTOs[i].Priority != nil {
			priority = *sourceDTOs[i].Priority
		}

		sources = append(sources, memtree.ContentSource{
			Adapter:  adapter,
			Priority: priority,
		})
	}
	sort.SliceStable(sources, func(a, b int) bool {
		return sources[a].Priority < sources[b].Priority
	})

	return sources, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
