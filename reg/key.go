package reg

import (
	"slices"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Separator joins path segments, matching the native convention.
const Separator = `\`

// Key is an immutable address in the hierarchy: a well-known root, an
// optional remote host, and an ordered list of path segments. Segments never
// contain the empty string, "." or ".." (resolution removes them), and a
// root key has zero segments. Keys are created by the root constructors and
// by Resolve; they are never mutated.
type Key struct {
	root     types.Root
	host     string
	segments []string
}

// LocalRoot returns the key addressing a well-known root on this machine.
func LocalRoot(root types.Root) Key {
	return Key{root: root}
}

// Parse turns a full path like `HKEY_CURRENT_USER\Software\Vendor` into a
// Key. The leading component must name a well-known root, long or short
// form; the remainder goes through Resolve's normalization.
func Parse(path string) (Key, error) {
	rootName, rest, _ := strings.Cut(strings.TrimLeft(path, Separator), Separator)
	root, err := types.ParseRoot(rootName)
	if err != nil {
		return Key{}, types.InvalidArgumentError(err.Error())
	}
	return LocalRoot(root).Resolve(rest), nil
}

// RemoteRoot returns the key addressing a well-known root on a remote host.
// An empty host is equivalent to LocalRoot.
func RemoteRoot(host string, root types.Root) Key {
	return Key{root: root, host: host}
}

// Root returns the key's well-known top-level root.
func (k Key) Root() types.Root { return k.root }

// Host returns the remote host name, or "" for the local machine.
func (k Key) Host() string { return k.host }

// IsRoot reports whether the key addresses a top-level root itself.
func (k Key) IsRoot() bool { return len(k.segments) == 0 }

// IsRemote reports whether the key addresses a remote host's registry.
func (k Key) IsRemote() bool { return k.host != "" }

// Segments returns a copy of the key's path segments.
func (k Key) Segments() []string { return slices.Clone(k.segments) }

// Name returns the last path segment, or the root's name at the root.
func (k Key) Name() string {
	if k.IsRoot() {
		return k.root.String()
	}
	return k.segments[len(k.segments)-1]
}

// Path returns the root name and segments joined by the separator, e.g.
// `HKEY_CURRENT_USER\Software\JavaSoft\Prefs`.
func (k Key) Path() string {
	if k.IsRoot() {
		return k.root.String()
	}
	return k.root.String() + Separator + strings.Join(k.segments, Separator)
}

// String returns Path, prefixed with `\\host\` for remote keys.
func (k Key) String() string {
	if k.host != "" {
		return `\\` + k.host + Separator + k.Path()
	}
	return k.Path()
}

// Parent returns the key one level up. The parent of a root is the root
// itself.
func (k Key) Parent() Key {
	if k.IsRoot() {
		return k
	}
	return Key{root: k.root, host: k.host, segments: slices.Clone(k.segments[:len(k.segments)-1])}
}

// Equal reports whether two keys address the same entry: same root, same
// host, and the same segment sequence compared case-insensitively, per
// native semantics.
func (k Key) Equal(o Key) bool {
	if k.root != o.root || !strings.EqualFold(k.host, o.host) {
		return false
	}
	if len(k.segments) != len(o.segments) {
		return false
	}
	for i := range k.segments {
		if !strings.EqualFold(k.segments[i], o.segments[i]) {
			return false
		}
	}
	return true
}

// Resolve canonicalizes a relative path against k and returns the resulting
// key. Pure string processing: no handle is opened and resolution cannot
// fail.
//
// Runs of separators collapse; empty and whitespace-only tokens are dropped.
// A leading separator makes the path absolute: the accumulator restarts at
// k's root, discarding k's own segments. "." is dropped. ".." pops one
// segment and is a no-op at the root. Every other token is pushed verbatim.
// An empty relative path returns k unchanged.
func (k Key) Resolve(rel string) Key {
	if rel == "" {
		return k
	}
	var acc []string
	if !strings.HasPrefix(rel, Separator) {
		acc = slices.Clone(k.segments)
	}
	for _, tok := range strings.Split(rel, Separator) {
		switch {
		case strings.TrimSpace(tok) == "":
			// Collapsed separator run or whitespace-only token.
		case tok == ".":
			// Current key.
		case tok == "..":
			if len(acc) > 0 {
				acc = acc[:len(acc)-1]
			}
		default:
			acc = append(acc, tok)
		}
	}
	return Key{root: k.root, host: k.host, segments: acc}
}

// subpath joins the key's segments for a native call relative to its root.
func (k Key) subpath() string {
	return strings.Join(k.segments, Separator)
}
