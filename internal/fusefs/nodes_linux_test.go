//go:build linux

package fusefs

import (
	"bytes"
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
	"neptis/internal/mocks"
	"neptis/internal/models"
	"neptis/internal/vfs"
)

func newTestFS(t *testing.T) (*filesystem, *mocks.MockFileAPI) {
	api := mocks.NewMockFileAPI(t)
	v := vfs.New(api, vfs.Options{
		LookupTTL:    10 * time.Second,
		LookupSize:   64,
		DumpTTL:      10 * time.Second,
		DumpMaxBytes: 64 << 20,
	})
	return &filesystem{vfs: v, uid: 1000, gid: 1000}, api
}

func TestToErrno(t *testing.T) {
	tests := []struct {
		kind  errs.Kind
		errno fuse.Errno
	}{
		{errs.NotFound, fuse.Errno(syscall.ENOENT)},
		{errs.ReadOnly, fuse.Errno(syscall.EROFS)},
		{errs.Denied, fuse.Errno(syscall.EACCES)},
		{errs.NetworkUnavailable, fuse.Errno(syscall.EIO)},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.errno, toErrno(errs.E(tt.kind, "test", nil)))
		})
	}
}

func TestFillAttr(t *testing.T) {
	f := &filesystem{uid: 1000, gid: 100}
	mtime := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	var a fuse.Attr
	f.fillAttr(&models.Node{Path: "/photos/data/a.txt", Kind: models.NodeFile, Size: 1000, Perm: 0o640, Mtime: mtime}, &a)
	assert.Equal(t, os.FileMode(0o640), a.Mode)
	assert.Equal(t, uint64(1000), a.Size)
	assert.Equal(t, uint64(2), a.Blocks)
	assert.Equal(t, mtime, a.Mtime)
	assert.Equal(t, uint32(1000), a.Uid)
	assert.Equal(t, attrTTL, a.Valid)

	f.fillAttr(&models.Node{Path: "/photos/repo/snap", Kind: models.NodeDirectory}, &a)
	assert.True(t, a.Mode.IsDir())
	assert.Equal(t, os.FileMode(0o555), a.Mode.Perm(), "read-only regions drop write bits")
}

func TestDir_ReadDirAll(t *testing.T) {
	f, api := newTestFS(t)
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return([]models.Node{
		{Path: "/photos/data/docs", Kind: models.NodeDirectory},
		{Path: "/photos/data/a.txt", Kind: models.NodeFile, Size: 3},
	}, nil).Once()

	d := &dir{node{fs: f, path: "/photos/data"}}
	dirents, err := d.ReadDirAll(context.Background())
	require.NoError(t, err)

	require.Len(t, dirents, 4)
	assert.Equal(t, fuse.Dirent{Name: ".", Type: fuse.DT_Dir}, dirents[0])
	assert.Equal(t, fuse.Dirent{Name: "..", Type: fuse.DT_Dir}, dirents[1])
	assert.Equal(t, fuse.Dirent{Name: "docs", Type: fuse.DT_Dir}, dirents[2])
	assert.Equal(t, fuse.Dirent{Name: "a.txt", Type: fuse.DT_File}, dirents[3])
}

func TestDir_Lookup(t *testing.T) {
	f, api := newTestFS(t)
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return([]models.Node{
		{Path: "/photos/data/docs", Kind: models.NodeDirectory},
		{Path: "/photos/data/a.txt", Kind: models.NodeFile, Size: 3},
	}, nil).Once()

	d := &dir{node{fs: f, path: "/photos/data"}}
	ctx := context.Background()

	var resp fuse.LookupResponse
	n, err := d.Lookup(ctx, &fuse.LookupRequest{Name: "docs"}, &resp)
	require.NoError(t, err)
	assert.IsType(t, &dir{}, n)
	assert.Equal(t, attrTTL, resp.EntryValid)

	n, err = d.Lookup(ctx, &fuse.LookupRequest{Name: "a.txt"}, &resp)
	require.NoError(t, err)
	assert.IsType(t, &file{}, n)

	_, err = d.Lookup(ctx, &fuse.LookupRequest{Name: "missing"}, &resp)
	assert.Equal(t, fuse.ENOENT, err)
}

func TestFile_ReadServesSlicesFromOneDump(t *testing.T) {
	const size = 5 << 20
	content := bytes.Repeat([]byte{0xab}, size)

	f, api := newTestFS(t)
	api.EXPECT().Dump(mock.Anything, "/photos/data/big.bin", int64(0), vfs.Unbounded).
		Return(content, nil).Once()

	fl := &file{node{fs: f, path: "/photos/data/big.bin"}}
	for i := 0; i < 2; i++ {
		var resp fuse.ReadResponse
		err := fl.Read(context.Background(), &fuse.ReadRequest{Offset: 1 << 20, Size: 64 << 10}, &resp)
		require.NoError(t, err)
		assert.Len(t, resp.Data, 64<<10)
	}
}

func TestFile_WriteForwardsOffset(t *testing.T) {
	f, api := newTestFS(t)
	api.EXPECT().WriteFile(mock.Anything, mock.MatchedBy(func(p models.FilePatch) bool {
		return p.Path == "/photos/data/a.txt" && *p.Offset == 10 && string(p.Data) == "hello"
	})).Return(nil).Once()

	fl := &file{node{fs: f, path: "/photos/data/a.txt"}}
	var resp fuse.WriteResponse
	err := fl.Write(context.Background(), &fuse.WriteRequest{Offset: 10, Data: []byte("hello")}, &resp)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Size)
}

func TestFile_WriteIntoRepoIsReadOnly(t *testing.T) {
	f, _ := newTestFS(t)

	fl := &file{node{fs: f, path: "/photos/repo/a.txt"}}
	var resp fuse.WriteResponse
	err := fl.Write(context.Background(), &fuse.WriteRequest{Data: []byte("x")}, &resp)
	assert.Equal(t, fuse.Errno(syscall.EROFS), err)
}

func TestDir_Rename(t *testing.T) {
	f, api := newTestFS(t)
	api.EXPECT().WriteFile(mock.Anything, mock.MatchedBy(func(p models.FilePatch) bool {
		return p.Path == "/photos/data/a/x" && *p.NewPath == "/photos/data/b/y"
	})).Return(nil).Once()

	from := &dir{node{fs: f, path: "/photos/data/a"}}
	to := &dir{node{fs: f, path: "/photos/data/b"}}
	err := from.Rename(context.Background(), &fuse.RenameRequest{OldName: "x", NewName: "y"}, to)
	require.NoError(t, err)
}

func TestDir_Remove(t *testing.T) {
	f, api := newTestFS(t)
	api.EXPECT().DeleteFile(mock.Anything, "/photos/data/old").Return(nil).Once()

	d := &dir{node{fs: f, path: "/photos/data"}}
	require.NoError(t, d.Remove(context.Background(), &fuse.RemoveRequest{Name: "old", Dir: true}))
}
