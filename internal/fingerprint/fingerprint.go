// Package fingerprint computes a Merkle hash of a local folder so the
// supervisor can tell whether anything changed since the last transfer.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"neptis/internal/errs"
)

// Hasher hashes folders on fs. File contents are hashed in parallel.
type Hasher struct {
	fs      afero.Fs
	workers int
}

func New(fs afero.Fs) *Hasher {
	return &Hasher{fs: fs, workers: runtime.NumCPU()}
}

type entry struct {
	name  string
	isDir bool
}

// Fingerprint returns the hex root of the tree under root. Leaves are the
// SHA-256 of file contents; a folder hashes the sorted list of its entry
// names, kinds and child hashes. Anything that is neither a regular file
// nor a folder is skipped.
func (h *Hasher) Fingerprint(ctx context.Context, root string) (string, error) {
	root = filepath.Clean(root)
	info, err := h.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.E(errs.NotFound, "fingerprint", fmt.Errorf("local folder %s does not exist", root))
		}
		return "", fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", errs.Errorf(errs.Configuration, "fingerprint", "%s is not a folder", root)
	}

	children := make(map[string][]entry)
	var files []string
	err = afero.Walk(h.fs, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}
		switch {
		case fi.IsDir():
			children[filepath.Dir(p)] = append(children[filepath.Dir(p)], entry{name: fi.Name(), isDir: true})
		case fi.Mode().IsRegular():
			children[filepath.Dir(p)] = append(children[filepath.Dir(p)], entry{name: fi.Name()})
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", root, err)
	}

	leaves, err := h.hashFiles(ctx, files)
	if err != nil {
		return "", err
	}

	sum := h.node(root, children, leaves)
	return hex.EncodeToString(sum), nil
}

func (h *Hasher) hashFiles(ctx context.Context, files []string) (map[string][]byte, error) {
	var mu sync.Mutex
	leaves := make(map[string][]byte, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(h.workers, 1))
	for _, p := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := h.hashFile(p)
			if err != nil {
				return err
			}
			mu.Lock()
			leaves[p] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (h *Hasher) hashFile(p string) ([]byte, error) {
	f, err := h.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	d := sha256.New()
	if _, err := io.Copy(d, f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return d.Sum(nil), nil
}

func (h *Hasher) node(dir string, children map[string][]entry, leaves map[string][]byte) []byte {
	list := children[dir]
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })

	d := sha256.New()
	for _, e := range list {
		p := filepath.Join(dir, e.name)
		var sum []byte
		kind := byte('f')
		if e.isDir {
			kind = 'd'
			sum = h.node(p, children, leaves)
		} else {
			sum = leaves[p]
		}
		d.Write([]byte(e.name))
		d.Write([]byte{0, kind})
		d.Write(sum)
	}
	return d.Sum(nil)
}
