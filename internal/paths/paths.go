// Package paths holds helpers for the server's remote namespace.
//
// Remote paths are slash separated and absolute. The first component names a
// mount, the second one of its halves: "data" (writable) or "repo" (read-only).
package paths

import (
	"fmt"
	"path"
	"strings"
)

const (
	Data = "data"
	Repo = "repo"
)

// Clean normalizes p to an absolute slash path without trailing separators.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

// Parent returns the directory containing p. The parent of the root is the root.
func Parent(p string) string {
	return path.Dir(Clean(p))
}

// Base returns the last component of p, "/" for the root.
func Base(p string) string {
	return path.Base(Clean(p))
}

func Join(dir, name string) string {
	return Clean(path.Join(dir, name))
}

// Components splits p into its non-empty components.
func Components(p string) []string {
	p = Clean(p)
	if p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// IsWritable reports whether p lies inside the data half of a mount.
func IsWritable(p string) bool {
	parts := Components(p)
	return len(parts) >= 2 && parts[1] == Data
}

// IsRoot reports whether p is the namespace root.
func IsRoot(p string) bool {
	return Clean(p) == "/"
}

// HasPrefix reports whether key falls under prefix, comparing cleaned paths
// as plain strings so that siblings sharing a name prefix match too.
func HasPrefix(key, prefix string) bool {
	return strings.HasPrefix(Clean(key), Clean(prefix))
}

// ShareRemote rewrites a user-facing remote folder into the path exposed by
// the server's file share:
//
//	/<mount>/{data|repo}/<rest>  ->  /<user>-<mount>-{data|repo}/<rest>
func ShareRemote(user, p string) (string, error) {
	parts := Components(p)
	if len(parts) < 2 || (parts[1] != Data && parts[1] != Repo) {
		return "", fmt.Errorf("remote folder %q must start with /<mount>/data or /<mount>/repo", p)
	}
	if user == "" {
		return "", fmt.Errorf("share user is required")
	}

	share := fmt.Sprintf("/%s-%s-%s", user, parts[0], parts[1])
	if rest := parts[2:]; len(rest) > 0 {
		share += "/" + strings.Join(rest, "/")
	}
	return share, nil
}

// SanitizeName trims whitespace and replaces separators so name can be used
// as a single local file name.
func SanitizeName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(cleaned)
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "_"
	}
	return cleaned
}
