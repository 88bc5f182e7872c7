package models

import (
	"path"
	"time"
)

type NodeKind string

const (
	NodeDirectory NodeKind = "dir"
	NodeFile      NodeKind = "file"
)

// Node is a remote filesystem entry. Children is set only when the server
// returned the directory's listing in the same response.
type Node struct {
	Path     string    `json:"path"`
	Kind     NodeKind  `json:"kind"`
	Size     int64     `json:"size"`
	Atime    time.Time `json:"atime"`
	Mtime    time.Time `json:"mtime"`
	Ctime    time.Time `json:"ctime"`
	Crtime   time.Time `json:"crtime"`
	Perm     uint32    `json:"perm"`
	Children []Node    `json:"children,omitempty"`
}

func (n *Node) IsDir() bool {
	return n.Kind == NodeDirectory
}

// Name returns the last element of the node path.
func (n *Node) Name() string {
	if n.Path == "/" || n.Path == "" {
		return "/"
	}
	return path.Base(n.Path)
}

// FilePatch is the body of a filesystem write. Any subset of the fields
// may be set; a nil field is left unchanged.
type FilePatch struct {
	Path       string     `json:"path"`
	NewPath    *string    `json:"new_path,omitempty"`
	Offset     *int64     `json:"offset,omitempty"`
	Data       []byte     `json:"data,omitempty"`
	Atime      *time.Time `json:"atime,omitempty"`
	Mtime      *time.Time `json:"mtime,omitempty"`
	TruncateTo *int64     `json:"truncate_to,omitempty"`
}

// Mutates reports whether the patch changes anything at all.
func (p *FilePatch) Mutates() bool {
	return p.NewPath != nil || p.Data != nil || p.Atime != nil || p.Mtime != nil || p.TruncateTo != nil
}
