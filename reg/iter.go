package reg

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// KeyIter is a lazy, closeable cursor over the direct children of a key.
// It holds one read handle for its whole lifetime: acquired by Children,
// released on exhaustion, on a mid-stream failure, or by an early Close,
// whichever comes first. Exactly one native open/close pair occurs per
// Children call.
//
//	it, err := r.Children(key)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		use(it.Key())
//	}
//	if err := it.Err(); err != nil { ... }
type KeyIter struct {
	r    *Registry
	base Key
	h    *Handle
	idx  uint32
	cur  Key
	err  error
	done bool
}

// Children opens a read handle on key and returns a cursor over its direct
// children. Each child name is resolved against key, so the yielded keys
// carry full paths.
func (r *Registry) Children(key Key) (*KeyIter, error) {
	h, err := r.Handle(key)
	if err != nil {
		return nil, err
	}
	// Sizing query: surfaces stale-handle and concurrent-deletion failures
	// before the first pull.
	if _, err := h.Info(); err != nil {
		return nil, h.CloseInto(err)
	}
	return &KeyIter{r: r, base: key, h: h}, nil
}

// Next advances the cursor. It returns false at the end of the sequence or
// on failure; check Err afterwards.
func (it *KeyIter) Next() bool {
	if it.done {
		return false
	}
	name, st := it.r.api.EnumKey(it.h.h, it.idx)
	switch {
	case st == native.StatusNoMoreItems:
		it.finish(nil)
		return false
	case !st.OK():
		it.finish(translate(st, it.base))
		return false
	}
	it.idx++
	it.cur = it.base.Resolve(name)
	return true
}

// Key returns the child the cursor is positioned on.
func (it *KeyIter) Key() Key { return it.cur }

// Err returns the error that terminated iteration, if any. Elements already
// consumed remain valid regardless.
func (it *KeyIter) Err() error { return it.err }

// Close releases the cursor's handle early. Closing an exhausted or already
// closed cursor is a no-op.
func (it *KeyIter) Close() error {
	if it.done {
		return nil
	}
	it.finish(nil)
	return it.err
}

func (it *KeyIter) finish(err error) {
	it.done = true
	it.err = attachSuppressed(err, it.h.Close())
}

// ValueIter is a lazy, closeable cursor over the values of a key, with the
// same handle lifetime discipline as KeyIter. Values are decoded before the
// filter applies, so a filter skips yields, never native calls.
type ValueIter struct {
	r      *Registry
	base   Key
	h      *Handle
	filter *types.Filter
	idx    uint32
	cur    types.Value
	err    error
	done   bool
}

// Values opens a read handle on key and returns a cursor over its values.
// A nil filter yields everything.
func (r *Registry) Values(key Key, filter *types.Filter) (*ValueIter, error) {
	h, err := r.Handle(key)
	if err != nil {
		return nil, err
	}
	if _, err := h.Info(); err != nil {
		return nil, h.CloseInto(err)
	}
	return &ValueIter{r: r, base: key, h: h, filter: filter}, nil
}

// Next advances the cursor to the next value passing the filter.
func (it *ValueIter) Next() bool {
	for {
		if it.done {
			return false
		}
		name, t, data, st := it.r.api.EnumValue(it.h.h, it.idx)
		switch {
		case st == native.StatusNoMoreItems:
			it.finish(nil)
			return false
		case !st.OK():
			it.finish(translate(st, it.base))
			return false
		}
		it.idx++
		v, err := codec.Decode(name, t, data)
		if err != nil {
			it.finish(fmt.Errorf("value %q of %s: %w", name, it.base.Path(), err))
			return false
		}
		if !it.filter.Match(v) {
			continue
		}
		it.cur = v
		return true
	}
}

// Value returns the value the cursor is positioned on.
func (it *ValueIter) Value() types.Value { return it.cur }

// Err returns the error that terminated iteration, if any.
func (it *ValueIter) Err() error { return it.err }

// Close releases the cursor's handle early.
func (it *ValueIter) Close() error {
	if it.done {
		return nil
	}
	it.finish(nil)
	return it.err
}

func (it *ValueIter) finish(err error) {
	it.done = true
	it.err = attachSuppressed(err, it.h.Close())
}

// Subkeys materializes Children into a slice.
func (r *Registry) Subkeys(key Key) ([]Key, error) {
	it, err := r.Children(key)
	if err != nil {
		return nil, err
	}
	var keys []Key
	for it.Next() {
		keys = append(keys, it.Key())
	}
	return keys, it.Err()
}

// ValueList materializes Values into a slice.
func (r *Registry) ValueList(key Key, filter *types.Filter) ([]types.Value, error) {
	it, err := r.Values(key, filter)
	if err != nil {
		return nil, err
	}
	var vals []types.Value
	for it.Next() {
		vals = append(vals, it.Value())
	}
	return vals, it.Err()
}
