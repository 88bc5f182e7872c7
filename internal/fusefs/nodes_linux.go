//go:build linux

package fusefs

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"neptis/internal/errs"
	"neptis/internal/models"
	"neptis/internal/paths"
	"neptis/internal/vfs"
)

// attrTTL is how long the kernel may trust attributes and entries. The
// library treats zero as "use the default", so the smallest positive
// duration stands in for it; freshness is the vfs cache's job.
const attrTTL = time.Nanosecond

type filesystem struct {
	vfs      *vfs.FS
	uid, gid uint32
}

var _ fs.FS = (*filesystem)(nil)

func (f *filesystem) Root() (fs.Node, error) {
	return &dir{node{fs: f, path: "/"}}, nil
}

type node struct {
	fs   *filesystem
	path string
}

func (n *node) Attr(ctx context.Context, a *fuse.Attr) error {
	found, err := n.fs.vfs.Find(ctx, n.path)
	if err != nil {
		return toErrno(err)
	}
	n.fs.fillAttr(found, a)
	return nil
}

func (n *node) Access(ctx context.Context, req *fuse.AccessRequest) error {
	if req.Mask&2 != 0 && !paths.IsWritable(n.path) && !paths.IsRoot(n.path) {
		return fuse.Errno(syscall.EROFS)
	}
	return nil
}

func (n *node) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return nil
}

func (n *node) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	patch := models.FilePatch{Path: n.path}
	if req.Valid.Size() {
		size := int64(req.Size)
		patch.TruncateTo = &size
	}
	if req.Valid.Atime() {
		at := req.Atime
		patch.Atime = &at
	}
	if req.Valid.Mtime() {
		mt := req.Mtime
		patch.Mtime = &mt
	}

	if patch.Mutates() {
		if err := n.fs.vfs.Write(ctx, patch); err != nil {
			return toErrno(err)
		}
	}
	return n.Attr(ctx, &resp.Attr)
}

func (f *filesystem) fillAttr(n *models.Node, a *fuse.Attr) {
	perm := os.FileMode(n.Perm) & os.ModePerm
	if perm == 0 {
		perm = 0o644
		if n.IsDir() {
			perm = 0o755
		}
	}
	if !paths.IsWritable(n.Path) {
		perm &^= 0o222
	}

	a.Valid = attrTTL
	a.Mode = perm
	if n.IsDir() {
		a.Mode |= os.ModeDir
		a.Nlink = 2
	} else {
		a.Nlink = 1
	}
	a.Size = uint64(max(n.Size, 0))
	a.Blocks = (a.Size + 511) / 512
	a.BlockSize = 4096
	a.Atime = n.Atime
	a.Mtime = n.Mtime
	a.Ctime = n.Ctime
	a.Crtime = n.Crtime
	a.Uid = f.uid
	a.Gid = f.gid
}

type dir struct {
	node
}

var (
	_ fs.Node                = (*dir)(nil)
	_ fs.NodeRequestLookuper = (*dir)(nil)
	_ fs.HandleReadDirAller  = (*dir)(nil)
	_ fs.NodeOpener          = (*dir)(nil)
	_ fs.HandleReleaser      = (*dir)(nil)
	_ fs.NodeCreater         = (*dir)(nil)
	_ fs.NodeMkdirer         = (*dir)(nil)
	_ fs.NodeRemover         = (*dir)(nil)
	_ fs.NodeRenamer         = (*dir)(nil)
	_ fs.NodeSetattrer       = (*dir)(nil)
	_ fs.NodeFsyncer         = (*dir)(nil)
	_ fs.NodeAccesser        = (*dir)(nil)
)

func (d *dir) child(name string) string {
	return paths.Join(d.path, name)
}

func (d *dir) Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) (fs.Node, error) {
	p := d.child(req.Name)
	found, err := d.fs.vfs.Find(ctx, p)
	if err != nil {
		return nil, toErrno(err)
	}
	resp.EntryValid = attrTTL
	return d.fs.nodeFor(found), nil
}

func (f *filesystem) nodeFor(n *models.Node) fs.Node {
	nd := node{fs: f, path: paths.Clean(n.Path)}
	if n.IsDir() {
		return &dir{nd}
	}
	return &file{nd}
}

func (d *dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	nodes, err := d.fs.vfs.ReadDir(ctx, d.path)
	if err != nil {
		return nil, toErrno(err)
	}

	dirents := make([]fuse.Dirent, 0, len(nodes))
	for i := range nodes {
		de := fuse.Dirent{Name: nodes[i].Name(), Type: fuse.DT_File}
		if nodes[i].IsDir() {
			de.Type = fuse.DT_Dir
		}
		dirents = append(dirents, de)
	}
	return dirents, nil
}

func (d *dir) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	return d, nil
}

func (d *dir) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}

func (d *dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	p := d.child(req.Name)
	if err := d.fs.vfs.Create(ctx, p, false); err != nil {
		return nil, nil, toErrno(err)
	}

	f := &file{node{fs: d.fs, path: p}}
	if found, err := d.fs.vfs.Find(ctx, p); err == nil {
		d.fs.fillAttr(found, &resp.Attr)
	} else {
		d.fs.fillAttr(&models.Node{Path: p, Kind: models.NodeFile}, &resp.Attr)
	}
	resp.EntryValid = attrTTL
	resp.Flags |= fuse.OpenDirectIO
	return f, f, nil
}

func (d *dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	p := d.child(req.Name)
	if err := d.fs.vfs.Create(ctx, p, true); err != nil {
		return nil, toErrno(err)
	}
	return &dir{node{fs: d.fs, path: p}}, nil
}

// Remove handles both unlink and rmdir.
func (d *dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	if err := d.fs.vfs.Delete(ctx, d.child(req.Name)); err != nil {
		return toErrno(err)
	}
	return nil
}

func (d *dir) Rename(ctx context.Context, req *fuse.RenameRequest, newDir fs.Node) error {
	target, ok := newDir.(*dir)
	if !ok {
		return fuse.Errno(syscall.ENOTDIR)
	}
	if err := d.fs.vfs.Rename(ctx, d.child(req.OldName), target.child(req.NewName)); err != nil {
		return toErrno(err)
	}
	return nil
}

type file struct {
	node
}

var (
	_ fs.Node           = (*file)(nil)
	_ fs.NodeOpener     = (*file)(nil)
	_ fs.HandleReader   = (*file)(nil)
	_ fs.HandleWriter   = (*file)(nil)
	_ fs.HandleFlusher  = (*file)(nil)
	_ fs.HandleReleaser = (*file)(nil)
	_ fs.NodeSetattrer  = (*file)(nil)
	_ fs.NodeFsyncer    = (*file)(nil)
	_ fs.NodeAccesser   = (*file)(nil)
)

func (f *file) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	if !req.Flags.IsReadOnly() && !paths.IsWritable(f.path) {
		return nil, fuse.Errno(syscall.EROFS)
	}
	resp.Flags |= fuse.OpenDirectIO
	return f, nil
}

// Read loads the whole file through the vfs cache and serves the slice.
func (f *file) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	data, err := f.fs.vfs.ReadAt(ctx, f.path, req.Offset, int64(req.Size))
	if err != nil {
		return toErrno(err)
	}
	resp.Data = data
	return nil
}

func (f *file) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	if err := f.fs.vfs.WriteAt(ctx, f.path, req.Offset, req.Data); err != nil {
		return toErrno(err)
	}
	resp.Size = len(req.Data)
	return nil
}

func (f *file) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return nil
}

func (f *file) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}

// toErrno maps vfs errors onto the errno the kernel reports to callers.
func toErrno(err error) error {
	switch errs.KindOf(err) {
	case errs.NotFound:
		return fuse.ENOENT
	case errs.ReadOnly:
		return fuse.Errno(syscall.EROFS)
	case errs.Denied:
		return fuse.Errno(syscall.EACCES)
	case errs.Cancelled:
		return fuse.Errno(syscall.EINTR)
	}
	slog.Debug("filesystem request failed", "error", err)
	return fuse.Errno(syscall.EIO)
}
