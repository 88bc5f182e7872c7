// Package browser walks the remote namespace without a kernel mount.
package browser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"neptis/internal/errs"
	"neptis/internal/models"
	"neptis/internal/paths"
	"neptis/internal/vfs"
)

// MaxEditSize is the largest file Edit will open.
const MaxEditSize = 16 << 20

var editableExtensions = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".yaml": true, ".yml": true,
	".toml": true, ".ini": true, ".conf": true, ".cfg": true, ".log": true,
	".csv": true, ".xml": true, ".html": true, ".css": true, ".js": true,
	".sh": true, ".py": true, ".go": true,
}

// Mode restricts which entries the browser may hand back to its caller.
type Mode int

const (
	// Explore never selects anything.
	Explore Mode = iota
	AnyFile
	AnyFolder
	WritableFile
	WritableFolder
)

func (m Mode) String() string {
	switch m {
	case AnyFile:
		return "any file"
	case AnyFolder:
		return "any folder"
	case WritableFile:
		return "writable file"
	case WritableFolder:
		return "writable folder"
	}
	return "explore"
}

// Accepts reports whether n can be selected in mode m.
func (m Mode) Accepts(n *models.Node) bool {
	switch m {
	case AnyFile:
		return !n.IsDir()
	case AnyFolder:
		return n.IsDir()
	case WritableFile:
		return !n.IsDir() && paths.IsWritable(n.Path)
	case WritableFolder:
		return n.IsDir() && paths.IsWritable(n.Path)
	}
	return false
}

// EditorFunc opens file in an editor and returns once the user is done.
type EditorFunc func(ctx context.Context, file string) error

type Browser struct {
	vfs    *vfs.FS
	fs     afero.Fs
	editor EditorFunc
}

type Option func(*Browser)

// WithEditor replaces the terminal editor, mostly for tests.
func WithEditor(fn EditorFunc) Option {
	return func(b *Browser) { b.editor = fn }
}

// New creates a browser over v. Local files are read and written through
// local, which is the OS filesystem outside tests.
func New(v *vfs.FS, local afero.Fs, opts ...Option) *Browser {
	b := &Browser{vfs: v, fs: local, editor: TerminalEditor}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// List returns the entries of p, directories first, then most recently
// accessed first.
func (b *Browser) List(ctx context.Context, p string) ([]models.Node, error) {
	nodes, err := b.vfs.ReadDir(ctx, p)
	if err != nil {
		return nil, err
	}

	out := make([]models.Node, 0, len(nodes))
	for _, n := range nodes {
		if !vfs.IsDot(n) {
			out = append(out, n)
		}
	}
	Sort(out)
	return out, nil
}

// Sort orders nodes directories first, then by atime descending, then by name.
func Sort(nodes []models.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := &nodes[i], &nodes[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if !a.Atime.Equal(b.Atime) {
			return a.Atime.After(b.Atime)
		}
		return a.Name() < b.Name()
	})
}

func (b *Browser) Stat(ctx context.Context, p string) (*models.Node, error) {
	return b.vfs.Find(ctx, p)
}

// Download copies the remote file at p to local and returns the bytes written.
func (b *Browser) Download(ctx context.Context, p, local string) (int64, error) {
	n, err := b.vfs.Find(ctx, p)
	if err != nil {
		return 0, err
	}
	if n.IsDir() {
		return 0, errs.Errorf(errs.Conflict, "browser.download", "%s is a directory", p)
	}

	data, err := b.vfs.Dump(ctx, p, 0, vfs.Unbounded)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(local); dir != "" {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(b.fs, local, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", local, err)
	}

	slog.Info("Downloaded file", "remote", p, "local", local, "bytes", len(data))
	return int64(len(data)), nil
}

// CanEdit reports whether Edit accepts n.
func CanEdit(n *models.Node) bool {
	if n.IsDir() || n.Size >= MaxEditSize || !paths.IsWritable(n.Path) {
		return false
	}
	return editableExtensions[strings.ToLower(filepath.Ext(n.Name()))]
}

// Edit round-trips p through the editor and uploads the result when it
// changed. It reports whether anything was written back.
func (b *Browser) Edit(ctx context.Context, p string) (bool, error) {
	n, err := b.vfs.Find(ctx, p)
	if err != nil {
		return false, err
	}
	if !CanEdit(n) {
		return false, errs.Errorf(errs.Denied, "browser.edit", "%s cannot be edited here", p)
	}

	original, err := b.vfs.Dump(ctx, p, 0, vfs.Unbounded)
	if err != nil {
		return false, err
	}

	tmp, err := afero.TempFile(b.fs, "", "neptis-edit-*"+filepath.Ext(n.Name()))
	if err != nil {
		return false, fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()
	defer b.fs.Remove(name)

	if _, err := tmp.Write(original); err != nil {
		tmp.Close()
		return false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := b.editor(ctx, name); err != nil {
		return false, fmt.Errorf("editor failed: %w", err)
	}

	edited, err := afero.ReadFile(b.fs, name)
	if err != nil {
		return false, fmt.Errorf("failed to read edited file: %w", err)
	}
	if bytes.Equal(original, edited) {
		return false, nil
	}

	size := int64(len(edited))
	var offset int64
	patch := models.FilePatch{Path: p, Offset: &offset, Data: edited, TruncateTo: &size}
	if err := b.vfs.Write(ctx, patch); err != nil {
		return false, err
	}
	return true, nil
}

// Rename moves p to a new name inside the same directory.
func (b *Browser) Rename(ctx context.Context, p, newName string) (string, error) {
	newName = paths.SanitizeName(newName)
	target := paths.Join(paths.Parent(p), newName)
	if err := b.vfs.Rename(ctx, p, target); err != nil {
		return "", err
	}
	return target, nil
}

func (b *Browser) Delete(ctx context.Context, p string) error {
	return b.vfs.Delete(ctx, p)
}

func (b *Browser) CreateFile(ctx context.Context, dir, name string) (string, error) {
	p := paths.Join(dir, paths.SanitizeName(name))
	return p, b.vfs.Create(ctx, p, false)
}

func (b *Browser) CreateDir(ctx context.Context, dir, name string) (string, error) {
	p := paths.Join(dir, paths.SanitizeName(name))
	return p, b.vfs.Create(ctx, p, true)
}

// Editor returns the user's editor command: $VISUAL, then $EDITOR, then vi.
func Editor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return "vi"
}

// TerminalEditor runs Editor() attached to the current terminal.
func TerminalEditor(ctx context.Context, file string) error {
	fields := strings.Fields(Editor())
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], file)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
