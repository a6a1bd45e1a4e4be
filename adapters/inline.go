package adapters

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/brettbedarf/memtree"
)

// InlineSource carries file content directly in the source config
type InlineSource struct {
	Text string `json:"text"`
}

// InlineProvider builds [InlineAdapter]s
type InlineProvider struct{}

func RegisterInline(r *Registry) {
	r.Register(InlineAdapterType, &InlineProvider{})
}

func (p *InlineProvider) NewAdapter(raw []byte) (memtree.ContentAdapter, error) {
	var src InlineSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	return NewInlineAdapter(src.Text), nil
}

// InlineAdapter implements [memtree.ContentAdapter] over a fixed string
type InlineAdapter struct {
	text string
}

func NewInlineAdapter(text string) *InlineAdapter {
	return &InlineAdapter{text: text}
}

func (a *InlineAdapter) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(a.text)), nil
}
