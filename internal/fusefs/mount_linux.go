//go:build linux

// Package fusefs serves the virtual filesystem through the kernel FUSE
// interface.
package fusefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"golang.org/x/sys/unix"

	"neptis/internal/errs"
	"neptis/internal/vfs"
)

// Supported reports whether this platform has a kernel adapter.
func Supported() bool { return true }

// Mount is a live mount of the remote namespace.
type Mount struct {
	dir  string
	conn *fuse.Conn
	done chan struct{}
	err  error
}

// Start mounts fsys at dir and serves it until Unmount is called or the
// kernel drops the connection. A stale mount left at dir by a crashed
// process is lazily detached first.
func Start(fsys *vfs.FS, dir string) (*Mount, error) {
	if err := prepareMountpoint(dir); err != nil {
		return nil, err
	}

	conn, err := mount(dir)
	if errors.Is(err, syscall.ENOTCONN) {
		slog.Warn("Mount point is stale, detaching and retrying", "dir", dir)
		if derr := detach(dir); derr != nil {
			return nil, derr
		}
		conn, err = mount(dir)
	}
	if err != nil {
		return nil, errs.E(errs.Configuration, "fusefs.mount", fmt.Errorf("failed to mount %s: %w", dir, err))
	}

	m := &Mount{dir: dir, conn: conn, done: make(chan struct{})}
	go m.serve(&filesystem{vfs: fsys, uid: uint32(os.Getuid()), gid: uint32(os.Getgid())})

	slog.Info("Mounted remote filesystem", "dir", dir)
	return m, nil
}

func mount(dir string) (*fuse.Conn, error) {
	return fuse.Mount(dir,
		fuse.FSName("neptis"),
		fuse.Subtype("neptisfs"),
	)
}

func (m *Mount) serve(root fs.FS) {
	defer close(m.done)
	m.err = fs.Serve(m.conn, root)
	if cerr := m.conn.Close(); cerr != nil && m.err == nil {
		m.err = cerr
	}
	slog.Info("Filesystem server stopped", "dir", m.dir, "error", m.err)
}

// Dir returns the mount point.
func (m *Mount) Dir() string { return m.dir }

// Done is closed once the mount is no longer served.
func (m *Mount) Done() <-chan struct{} { return m.done }

// Unmount detaches the filesystem and waits for the server to stop.
func (m *Mount) Unmount() error {
	select {
	case <-m.done:
		return m.err
	default:
	}

	if err := fuse.Unmount(m.dir); err != nil {
		slog.Warn("Unmount failed, detaching lazily", "dir", m.dir, "error", err)
		if derr := detach(m.dir); derr != nil {
			return derr
		}
	}
	<-m.done
	return m.err
}

// prepareMountpoint makes sure dir exists and is not a dead mount.
func prepareMountpoint(dir string) error {
	_, err := os.ReadDir(dir)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.ENOTCONN):
		slog.Warn("Found stale mount, detaching", "dir", dir)
		return detach(dir)
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.E(errs.Configuration, "fusefs.mount", fmt.Errorf("failed to create mount point: %w", err))
		}
		return nil
	}
	return errs.E(errs.Configuration, "fusefs.mount", fmt.Errorf("failed to read mount point: %w", err))
}

func detach(dir string) error {
	if err := unix.Unmount(dir, unix.MNT_DETACH); err != nil {
		return errs.E(errs.Configuration, "fusefs.detach", fmt.Errorf("failed to detach %s: %w", dir, err))
	}
	return nil
}
