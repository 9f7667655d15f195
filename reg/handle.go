package reg

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// Handle is a scoped, single-use wrapper around one open native key handle.
// At most one live native handle exists per Handle instance; Close is
// idempotent. A Handle is for single-threaded, single-owner use.
type Handle struct {
	r       *Registry
	key     Key
	h       native.Handle
	access  types.Access
	tx      *Transaction
	created bool // create mode only: disposition was "created new key"
	closed  bool
}

type handleOpts struct {
	access types.Access
	create bool
	tx     *Transaction
}

// HandleOption configures handle acquisition.
type HandleOption func(*handleOpts)

// WithAccess requests a specific access-rights bitmask. The default is
// read access.
func WithAccess(a types.Access) HandleOption {
	return func(o *handleOpts) { o.access = a }
}

// WithCreate switches acquisition to create-if-absent mode.
func WithCreate() HandleOption {
	return func(o *handleOpts) { o.create = true }
}

// WithTransaction scopes the handle to a transaction: writes through the
// handle become visible only when the transaction commits.
func WithTransaction(tx *Transaction) HandleOption {
	return func(o *handleOpts) { o.tx = tx }
}

// Handle acquires a native handle for key. Every successful acquisition
// must be paired with exactly one Close, usually deferred:
//
//	h, err := r.Handle(key, reg.WithAccess(types.AccessWrite))
//	if err != nil { ... }
//	defer func() { err = h.CloseInto(err) }()
func (r *Registry) Handle(key Key, opts ...HandleOption) (*Handle, error) {
	o := handleOpts{access: types.AccessRead}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tx != nil && o.tx.resolved() {
		return nil, types.InvalidArgumentError("transaction already " + o.tx.Status().String())
	}

	rootH, st := r.api.ConnectRoot(key.host, key.root)
	if !st.OK() {
		return nil, translate(st, key)
	}

	ntx := native.NoTx
	if o.tx != nil {
		ntx = o.tx.tx
	}

	var (
		h    native.Handle
		disp native.Disposition
	)
	if o.create {
		h, disp, st = r.api.Create(rootH, key.subpath(), o.access, ntx)
	} else {
		h, st = r.api.Open(rootH, key.subpath(), o.access, ntx)
	}
	err := translate(st, key)

	// A remote root handle is real and must be released; its close failure
	// follows the suppressed-error discipline.
	if key.IsRemote() {
		err = attachSuppressed(err, translate(r.api.Close(rootH), key))
	}
	if err != nil {
		return nil, err
	}

	return &Handle{
		r:       r,
		key:     key,
		h:       h,
		access:  o.access,
		tx:      o.tx,
		created: disp == native.CreatedNewKey,
	}, nil
}

// Key returns the key this handle was acquired for.
func (h *Handle) Key() Key { return h.key }

// Created reports whether acquisition in create mode made a new key rather
// than opening an existing one. It is always false outside create mode.
func (h *Handle) Created() bool { return h.created }

// Close releases the native handle. Closing twice is a no-op: no second
// native close call is issued.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return translate(h.r.api.Close(h.h), h.key)
}

// CloseInto closes the handle and folds any close failure into primary:
// with a primary error already in flight the close failure is attached as a
// suppressed error; with none, the close failure is the reported error.
// Designed for defer:
//
//	defer func() { err = h.CloseInto(err) }()
func (h *Handle) CloseInto(primary error) error {
	return attachSuppressed(primary, h.Close())
}

// Info reports child/value counts and maximum name/data lengths.
func (h *Handle) Info() (native.KeyInfo, error) {
	info, st := h.r.api.QueryInfo(h.h)
	if !st.OK() {
		return native.KeyInfo{}, translate(st, h.key)
	}
	return info, nil
}

// Value reads and decodes one value by name ("" addresses the default
// value). A missing value is a NotFound error carrying the key's path.
func (h *Handle) Value(name string) (types.Value, error) {
	t, data, st := h.r.api.QueryValue(h.h, name)
	if !st.OK() {
		return types.Value{}, translate(st, h.key)
	}
	v, err := codec.Decode(name, t, data)
	if err != nil {
		return types.Value{}, fmt.Errorf("value %q of %s: %w", name, h.key.Path(), err)
	}
	return v, nil
}

// SetValue encodes and writes one value.
func (h *Handle) SetValue(v types.Value) error {
	data, err := codec.Encode(v)
	if err != nil {
		return fmt.Errorf("value %q of %s: %w", v.Name, h.key.Path(), err)
	}
	return translate(h.r.api.SetValue(h.h, v.Name, v.Type, data), h.key)
}

// DeleteValue removes one value by name.
func (h *Handle) DeleteValue(name string) error {
	return translate(h.r.api.DeleteValue(h.h, name), h.key)
}
