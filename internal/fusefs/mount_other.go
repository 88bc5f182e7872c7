//go:build !linux

package fusefs

import (
	"runtime"

	"neptis/internal/errs"
	"neptis/internal/vfs"
)

func Supported() bool { return false }

// Mount is never created on this platform; use the browser instead.
type Mount struct{}

func Start(_ *vfs.FS, _ string) (*Mount, error) {
	return nil, errs.Errorf(errs.Configuration, "fusefs.mount", "kernel filesystem is not available on %s", runtime.GOOS)
}

func (m *Mount) Dir() string { return "" }

func (m *Mount) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (m *Mount) Unmount() error { return nil }
