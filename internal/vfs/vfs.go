// Package vfs projects the server's file namespace onto local callers,
// with short-lived read-through caches in front of the REST API.
package vfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"neptis/internal/config"
	"neptis/internal/errs"
	"neptis/internal/interfaces"
	"neptis/internal/models"
	"neptis/internal/paths"
)

// Unbounded asks Dump for everything from offset to the end of the file.
const Unbounded int64 = -1

type Options struct {
	LookupTTL    time.Duration
	LookupSize   int
	DumpTTL      time.Duration
	DumpMaxBytes int64
}

func OptionsFromConfig(cfg config.VFSConfig) Options {
	return Options{
		LookupTTL:    cfg.LookupTTL,
		LookupSize:   cfg.LookupSize,
		DumpTTL:      cfg.DumpTTL,
		DumpMaxBytes: cfg.DumpMaxBytes,
	}
}

// FS is safe for concurrent use.
type FS struct {
	api    interfaces.FileAPI
	lookup *expirable.LRU[string, []models.Node]
	dumps  *dumpCache
	group  singleflight.Group

	// gen counts invalidations. A server answer is only cached when no
	// invalidation happened while it was in flight.
	mu  sync.Mutex
	gen uint64
}

func New(api interfaces.FileAPI, opts Options) *FS {
	if opts.LookupSize <= 0 {
		opts.LookupSize = 4096
	}
	return &FS{
		api:    api,
		lookup: expirable.NewLRU[string, []models.Node](opts.LookupSize, nil, opts.LookupTTL),
		dumps:  newDumpCache(opts.DumpTTL, opts.DumpMaxBytes, time.Now),
	}
}

// Root is the synthesized node for "/".
func Root() models.Node {
	return models.Node{Path: "/", Kind: models.NodeDirectory, Perm: 0o755}
}

// IsDot reports whether n is one of the synthesized "." and ".." entries.
func IsDot(n models.Node) bool {
	name := n.Name()
	return name == "." || name == ".."
}

// ReadDir returns the direct children of p preceded by "." and "..".
func (f *FS) ReadDir(ctx context.Context, p string) ([]models.Node, error) {
	children, err := f.children(ctx, p)
	if err != nil {
		return nil, err
	}

	p = paths.Clean(p)
	self, parent := p+"/.", p+"/.."
	if paths.IsRoot(p) {
		self, parent = "/.", "/.."
	}
	out := make([]models.Node, 0, len(children)+2)
	out = append(out,
		models.Node{Path: self, Kind: models.NodeDirectory, Perm: 0o755},
		models.Node{Path: parent, Kind: models.NodeDirectory, Perm: 0o755},
	)
	return append(out, children...), nil
}

// children returns the listing of p without the synthesized entries.
func (f *FS) children(ctx context.Context, p string) ([]models.Node, error) {
	p = paths.Clean(p)
	if nodes, ok := f.lookup.Get(p); ok {
		return nodes, nil
	}

	gen := f.generation()
	nodes, err := f.api.Browse(ctx, p)
	if err != nil {
		return nil, mapErr("vfs.readdir", p, err)
	}
	f.mu.Lock()
	if f.gen == gen {
		f.remember(p, nodes)
	}
	f.mu.Unlock()
	return nodes, nil
}

func (f *FS) generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// remember caches the listing of p and of every subtree the server
// included in the same response.
func (f *FS) remember(p string, nodes []models.Node) {
	if nodes == nil {
		nodes = []models.Node{}
	}
	f.lookup.Add(p, nodes)
	for _, n := range nodes {
		if n.IsDir() && n.Children != nil {
			f.remember(paths.Clean(n.Path), n.Children)
		}
	}
}

// Find returns the node at p by scanning its parent's listing.
func (f *FS) Find(ctx context.Context, p string) (*models.Node, error) {
	p = paths.Clean(p)
	if paths.IsRoot(p) {
		root := Root()
		return &root, nil
	}

	siblings, err := f.children(ctx, paths.Parent(p))
	if err != nil {
		return nil, err
	}
	name := paths.Base(p)
	for i := range siblings {
		if siblings[i].Name() == name {
			n := siblings[i]
			return &n, nil
		}
	}
	return nil, errs.Errorf(errs.NotFound, "vfs.find", "%s does not exist", p)
}

// Dump returns up to size bytes of p starting at offset; size < 0 means to
// the end of the file. Unbounded reads go through the whole-file cache.
// Bounded reads are served from it when present and fall through otherwise.
func (f *FS) Dump(ctx context.Context, p string, offset, size int64) ([]byte, error) {
	p = paths.Clean(p)
	if offset < 0 {
		return nil, errs.Errorf(errs.ParseError, "vfs.dump", "negative offset %d", offset)
	}

	if data, ok := f.dumps.get(p); ok {
		return slice(data, offset, size), nil
	}
	if size < 0 {
		data, err := f.whole(ctx, p)
		if err != nil {
			return nil, err
		}
		return slice(data, offset, size), nil
	}

	data, err := f.api.Dump(ctx, p, offset, size)
	if err != nil {
		return nil, mapErr("vfs.dump", p, err)
	}
	if int64(len(data)) > size {
		data = data[:size]
	}
	return data, nil
}

// ReadAt loads the whole file into the cache and serves the requested slice.
func (f *FS) ReadAt(ctx context.Context, p string, offset, size int64) ([]byte, error) {
	p = paths.Clean(p)
	data, err := f.whole(ctx, p)
	if err != nil {
		return nil, err
	}
	return slice(data, offset, size), nil
}

func (f *FS) whole(ctx context.Context, p string) ([]byte, error) {
	if data, ok := f.dumps.get(p); ok {
		return data, nil
	}

	// Readers arriving after an invalidation must not join a dump that
	// started before it.
	gen := f.generation()
	key := strconv.FormatUint(gen, 10) + ":" + p
	v, err, shared := f.group.Do(key, func() (interface{}, error) {
		data, err := f.api.Dump(ctx, p, 0, Unbounded)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		if f.gen == gen {
			f.dumps.add(p, data)
		}
		f.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, mapErr("vfs.dump", p, err)
	}
	if shared {
		slog.Debug("shared file dump", "path", p)
	}
	return v.([]byte), nil
}

func slice(data []byte, offset, size int64) []byte {
	n := int64(len(data))
	if offset >= n {
		return []byte{}
	}
	end := n
	if size >= 0 && offset+size < n {
		end = offset + size
	}
	return data[offset:end]
}

// Write applies patch. Every path it touches must be writable.
func (f *FS) Write(ctx context.Context, patch models.FilePatch) error {
	patch.Path = paths.Clean(patch.Path)
	if err := checkWritable("vfs.write", patch.Path); err != nil {
		return err
	}
	if patch.NewPath != nil {
		np := paths.Clean(*patch.NewPath)
		patch.NewPath = &np
		if err := checkWritable("vfs.write", np); err != nil {
			return err
		}
		defer f.Invalidate(np)
	}
	defer f.Invalidate(patch.Path)

	if err := f.api.WriteFile(ctx, patch); err != nil {
		return mapErr("vfs.write", patch.Path, err)
	}
	return nil
}

// Rename is a Write that only moves p to newPath.
func (f *FS) Rename(ctx context.Context, p, newPath string) error {
	return f.Write(ctx, models.FilePatch{Path: p, NewPath: &newPath})
}

// Truncate is a Write that only changes the size of p.
func (f *FS) Truncate(ctx context.Context, p string, size int64) error {
	return f.Write(ctx, models.FilePatch{Path: p, TruncateTo: &size})
}

// WriteAt is a Write of data at offset.
func (f *FS) WriteAt(ctx context.Context, p string, offset int64, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	return f.Write(ctx, models.FilePatch{Path: p, Offset: &offset, Data: data})
}

func (f *FS) Create(ctx context.Context, p string, isDir bool) error {
	p = paths.Clean(p)
	if err := checkWritable("vfs.create", p); err != nil {
		return err
	}
	defer f.Invalidate(p)

	if err := f.api.CreateFile(ctx, p, isDir); err != nil {
		return mapErr("vfs.create", p, err)
	}
	return nil
}

// Delete removes a file or an empty directory.
func (f *FS) Delete(ctx context.Context, p string) error {
	p = paths.Clean(p)
	if err := checkWritable("vfs.delete", p); err != nil {
		return err
	}
	defer f.Invalidate(p)

	if err := f.api.DeleteFile(ctx, p); err != nil {
		return mapErr("vfs.delete", p, err)
	}
	return nil
}

// Invalidate drops every cached entry under the parent of p, which covers
// p itself, its siblings and anything renamed next to it.
func (f *FS) Invalidate(p string) {
	prefix := paths.Parent(p)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++

	removed := 0
	for _, key := range f.lookup.Keys() {
		if paths.HasPrefix(key, prefix) {
			f.lookup.Remove(key)
			removed++
		}
	}
	removed += f.dumps.invalidatePrefix(prefix)

	slog.Debug("invalidated cache entries", "prefix", prefix, "count", removed)
}

// CachedBytes reports the current weight of the file cache.
func (f *FS) CachedBytes() int64 {
	return f.dumps.bytes()
}

func checkWritable(op, p string) error {
	if !paths.IsWritable(p) {
		return errs.Errorf(errs.ReadOnly, op, "%s is outside a data folder", p)
	}
	return nil
}

// mapErr narrows client errors to the kinds filesystem callers handle.
func mapErr(op, p string, err error) error {
	wrapped := fmt.Errorf("%s: %w", p, err)
	switch errs.KindOf(err) {
	case errs.NotFound:
		return errs.E(errs.NotFound, op, wrapped)
	case errs.ReadOnly:
		return errs.E(errs.ReadOnly, op, wrapped)
	case errs.Unauthorized, errs.Denied, errs.Conflict:
		return errs.E(errs.Denied, op, wrapped)
	}
	if errors.Is(err, context.Canceled) {
		return errs.E(errs.Cancelled, op, wrapped)
	}
	return errs.E(errs.NetworkUnavailable, op, wrapped)
}
