package reg

import (
	"math"

	"github.com/joshuapare/regkit/pkg/types"
)

// Order selects where a node is emitted relative to its descendants during
// a walk.
type Order int

const (
	// PreOrder emits a node before its descendants. The default.
	PreOrder Order = iota
	// PostOrder emits a node after its descendants ("subkeys first").
	PostOrder
)

// UnlimitedDepth removes the depth bound from a walk.
const UnlimitedDepth = math.MaxInt

// walkFrame is one position in the iterative traversal. The walk keeps an
// explicit stack of frames instead of recursing, so depth is bounded by
// memory, not by the call stack.
type walkFrame struct {
	key      Key
	depth    int
	children *KeyIter // open child cursor, nil until expanded or when depth-capped
	yielded  bool     // pre-order: node already emitted
	expanded bool
}

// Walker is a lazy, closeable depth-first traversal. Each pull may perform
// at most a handful of native calls (opening or advancing one child
// cursor); handles are released as soon as a subtree is exhausted.
type Walker struct {
	r        *Registry
	order    Order
	maxDepth int
	stack    []*walkFrame
	cur      Key
	err      error
	done     bool
}

// Walk starts a depth-first traversal of the subtree rooted at key,
// including key itself. maxDepth bounds descent: 0 yields only key and
// performs no native calls; UnlimitedDepth removes the bound. A negative
// maxDepth is rejected before any native call is made.
func (r *Registry) Walk(key Key, maxDepth int, order Order) (*Walker, error) {
	if maxDepth < 0 {
		return nil, types.InvalidArgumentError("negative walk depth")
	}
	if order != PreOrder && order != PostOrder {
		return nil, types.InvalidArgumentError("unknown walk order")
	}
	return &Walker{
		r:        r,
		order:    order,
		maxDepth: maxDepth,
		stack:    []*walkFrame{{key: key}},
	}, nil
}

// Next advances to the next key in walk order. It returns false at the end
// or on failure; check Err afterwards. Keys already yielded remain valid
// after a mid-stream failure.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}
	for {
		if len(w.stack) == 0 {
			w.done = true
			return false
		}
		top := w.stack[len(w.stack)-1]

		if w.order == PreOrder && !top.yielded {
			top.yielded = true
			w.cur = top.key
			return true
		}

		if !top.expanded {
			top.expanded = true
			if top.depth < w.maxDepth {
				it, err := w.r.Children(top.key)
				if err != nil {
					w.fail(err)
					return false
				}
				top.children = it
			}
		}

		if top.children != nil {
			if top.children.Next() {
				child := top.children.Key()
				w.stack = append(w.stack, &walkFrame{key: child, depth: top.depth + 1})
				continue
			}
			if err := top.children.Err(); err != nil {
				w.fail(err)
				return false
			}
			top.children = nil // cursor closed itself on exhaustion
		}

		w.stack = w.stack[:len(w.stack)-1]
		if w.order == PostOrder {
			w.cur = top.key
			return true
		}
	}
}

// Key returns the key the walker is positioned on.
func (w *Walker) Key() Key { return w.cur }

// Err returns the error that terminated the walk, if any.
func (w *Walker) Err() error { return w.err }

// Close abandons the walk early, releasing every handle still held along
// the current path. Closing a finished walker is a no-op.
func (w *Walker) Close() error {
	if w.done {
		return nil
	}
	w.fail(nil)
	return w.err
}

// fail terminates the walk, releasing every open child cursor. Close
// failures join the primary error as suppressed secondaries.
func (w *Walker) fail(err error) {
	w.done = true
	for i := len(w.stack) - 1; i >= 0; i-- {
		if it := w.stack[i].children; it != nil {
			err = attachSuppressed(err, it.Close())
		}
	}
	w.stack = nil
	w.err = err
}
