package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/brettbedarf/memtree"
	"github.com/brettbedarf/memtree/internal/util"
	"github.com/brettbedarf/memtree/tree"
)

// LoadResult counts the nodes added by [MemTree.Apply]
type LoadResult struct {
	Dirs  int
	Files int
}

// Apply adds every request in order. A file gets its inline content first,
// then the content of the first source (by priority) that can be read.
// Failing entries are logged and skipped; their errors are joined into the
// returned error. A failed entry does not stop later ones, but anything
// below a directory that failed to add will fail to resolve.
func (m *MemTree) Apply(ctx context.Context, reqs []*memtree.NodeRequest) (LoadResult, error) {
	logger := util.GetLogger("MemTree.Apply")

	var res LoadResult
	var errs *multierror.Error
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		if err := m.apply(ctx, req); err != nil {
			logger.Warn().Err(err).Str("id", req.ID).Str("path", req.Path()).Msg("Failed to add node")
			errs = multierror.Append(errs, err)
			continue
		}
		if req.Type == memtree.DirNodeType {
			res.Dirs++
		} else {
			res.Files++
		}
		logger.Debug().Str("id", req.ID).Str("path", req.Path()).Str("type", string(req.Type)).Msg("Added node")
	}
	return res, errs.ErrorOrNil()
}

func (m *MemTree) apply(ctx context.Context, req *memtree.NodeRequest) error {
	kind, err := tree.ParseKind(string(req.Type))
	if err != nil {
		return err
	}
	if err := m.Add(req.Parent, req.Name, kind); err != nil {
		return err
	}
	if kind != tree.File {
		return nil
	}

	path := req.Path()
	if req.Content != "" {
		if err := m.Write(path, []byte(req.Content)); err != nil {
			return err
		}
	}
	if len(req.Sources) == 0 {
		return nil
	}
	data, err := m.fetch(ctx, req)
	if err != nil {
		return err
	}
	return m.Write(path, data)
}

// fetch returns the content of the first source that can be read in full.
// Sources are tried in priority order.
func (m *MemTree) fetch(ctx context.Context, req *memtree.NodeRequest) ([]byte, error) {
	logger := util.GetLogger("MemTree.fetch")

	var errs *multierror.Error
	for i, src := range req.Sources {
		data, err := m.readSource(ctx, src)
		if err == nil {
			logger.Debug().Int("source", i).Str("path", req.Path()).Str("size", humanize.Bytes(uint64(len(data)))).
				Msg("Fetched content")
			return data, nil
		}
		logger.Debug().Err(err).Int("source", i).Int("priority", src.Priority).Str("path", req.Path()).
			Msg("Content source failed; trying next")
		errs = multierror.Append(errs, err)
	}
	return nil, fmt.Errorf("no readable source for %s: %w", req.Path(), errs)
}

func (m *MemTree) readSource(ctx context.Context, src memtree.ContentSource) ([]byte, error) {
	if m.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, seconds(m.cfg.FetchTimeout))
		defer cancel()
	}
	rc, err := src.Adapter.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
