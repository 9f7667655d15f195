package reg

import (
	"errors"
	"strings"

	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// GetValue reads one value by name. A missing key or value is a NotFound
// error carrying the key's full path.
func (r *Registry) GetValue(key Key, name string) (v types.Value, err error) {
	h, err := r.Handle(key)
	if err != nil {
		return types.Value{}, err
	}
	defer func() { err = h.CloseInto(err) }()
	return h.Value(name)
}

// FindValue is the optional-result variant of GetValue: a missing key or
// value yields (nil, nil) instead of an error.
func (r *Registry) FindValue(key Key, name string) (*types.Value, error) {
	v, err := r.GetValue(key, name)
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SetValue encodes and writes one value under key.
func (r *Registry) SetValue(key Key, v types.Value) (err error) {
	h, err := r.Handle(key, WithAccess(types.AccessWrite))
	if err != nil {
		return err
	}
	defer func() { err = h.CloseInto(err) }()
	return h.SetValue(v)
}

// DeleteValue removes one value by name.
func (r *Registry) DeleteValue(key Key, name string) (err error) {
	h, err := r.Handle(key, WithAccess(types.AccessWrite))
	if err != nil {
		return err
	}
	defer func() { err = h.CloseInto(err) }()
	return h.DeleteValue(name)
}

// Exists reports whether the key is present, by probing a read-only open.
// An access-denied probe still means the key exists.
func (r *Registry) Exists(key Key) (bool, error) {
	h, err := r.Handle(key)
	if err == nil {
		return true, h.Close()
	}
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if errors.Is(err, types.ErrAccessDenied) {
		return true, nil
	}
	return false, err
}

// IsAccessible reports whether a read-only open of the key succeeds.
func (r *Registry) IsAccessible(key Key) bool {
	h, err := r.Handle(key)
	if err != nil {
		return false
	}
	_ = h.Close()
	return true
}

// Create creates the key, failing with AlreadyExists if it is already
// present. The native create-or-open call does not fail on pre-existence;
// the result disposition is inspected instead.
func (r *Registry) Create(key Key, opts ...HandleOption) (err error) {
	if key.IsRoot() {
		return types.AlreadyExistsError(key.Path(), key.host)
	}
	h, err := r.Handle(key, append(opts, WithCreate())...)
	if err != nil {
		return err
	}
	defer func() { err = h.CloseInto(err) }()
	if !h.created {
		return types.AlreadyExistsError(key.Path(), key.host)
	}
	return nil
}

// CreateIfNotExists creates the key if absent; an existing key is not an
// error.
func (r *Registry) CreateIfNotExists(key Key, opts ...HandleOption) error {
	if key.IsRoot() {
		return nil
	}
	h, err := r.Handle(key, append(opts, WithCreate())...)
	if err != nil {
		return err
	}
	return h.Close()
}

// Delete atomically removes the key. A missing key is NotFound; a key that
// still has subkeys is a distinct NotEmpty error. Roots cannot be deleted.
func (r *Registry) Delete(key Key) error {
	if key.IsRoot() {
		return types.InvalidArgumentError("cannot delete a root key")
	}
	rootH, st := r.api.ConnectRoot(key.host, key.root)
	if !st.OK() {
		return translate(st, key)
	}
	err := translate(r.api.DeleteKey(rootH, key.subpath()), key)
	if key.IsRemote() {
		err = attachSuppressed(err, translate(r.api.Close(rootH), key))
	}
	return err
}

// DeleteIfExists removes the key if present; a missing key is not an error.
func (r *Registry) DeleteIfExists(key Key) error {
	err := r.Delete(key)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	return err
}

// Rename atomically renames the key within its parent and returns the key
// addressing the renamed entry.
//
// The native rename reports access-denied both for a genuine permission
// failure and for a target-name collision. The two are disambiguated by a
// read-only probe-open of the target path: probe success means
// AlreadyExists (carrying the target's path), probe not-found re-reports
// the original AccessDenied against the source. The probe is inherently
// racy against concurrent native mutation; that behavior is inherited, not
// fixed.
func (r *Registry) Rename(key Key, newName string) (Key, error) {
	if key.IsRoot() {
		return Key{}, types.InvalidArgumentError("cannot rename a root key")
	}
	if strings.Contains(newName, Separator) {
		return Key{}, types.InvalidArgumentError("rename target " + newName + " contains a path separator")
	}
	if newName == "" {
		return Key{}, types.InvalidArgumentError("rename target is empty")
	}

	rootH, st := r.api.ConnectRoot(key.host, key.root)
	if !st.OK() {
		return Key{}, translate(st, key)
	}
	closeRoot := func(err error) error {
		if key.IsRemote() {
			return attachSuppressed(err, translate(r.api.Close(rootH), key))
		}
		return err
	}

	target := key.Parent().Resolve(newName)
	st = r.api.RenameKey(rootH, key.subpath(), newName)
	if st.OK() {
		return target, closeRoot(nil)
	}
	if st != native.StatusAccessDenied {
		return Key{}, closeRoot(translate(st, key))
	}

	// Disambiguate: does the target already exist?
	probe, pst := r.api.Open(rootH, target.subpath(), types.AccessRead, native.NoTx)
	switch {
	case pst.OK():
		var err error = types.AlreadyExistsError(target.Path(), target.host)
		return Key{}, closeRoot(attachSuppressed(err, translate(r.api.Close(probe), target)))
	case pst == native.StatusFileNotFound:
		return Key{}, closeRoot(types.AccessDeniedError(key.Path(), key.host))
	default:
		// Probe inconclusive: report the original failure, with the probe
		// failure recorded alongside it.
		err := translate(native.StatusAccessDenied, key)
		return Key{}, closeRoot(attachSuppressed(err, translate(pst, target)))
	}
}
