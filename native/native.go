package native

import (
	"time"

	"github.com/joshuapare/regkit/pkg/types"
)

// Handle is an opaque native key handle. The zero Handle is never valid.
type Handle uintptr

// InvalidHandle is returned by failed acquisitions.
const InvalidHandle Handle = 0

// RootHandle converts a well-known root into its predefined native handle.
// Predefined handles are pseudo-handles: closing them is a no-op.
func RootHandle(r types.Root) Handle {
	return Handle(uintptr(r))
}

// Tx is an opaque native transaction handle.
type Tx uintptr

// NoTx means the operation runs outside any transaction.
const NoTx Tx = 0

// Disposition reports whether a create-or-open call created the key.
type Disposition uint32

const (
	CreatedNewKey     Disposition = 1
	OpenedExistingKey Disposition = 2
)

// TxOutcome is the polled state of a native transaction.
type TxOutcome uint32

const (
	TxActive TxOutcome = iota
	TxCommitted
	TxRolledBack
	TxUnknown
)

// String implements the Stringer interface for TxOutcome.
func (o TxOutcome) String() string {
	switch o {
	case TxActive:
		return "active"
	case TxCommitted:
		return "committed"
	case TxRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// KeyInfo carries the counts and maximum lengths reported for an open key.
// Lengths are in UTF-16 code units, excluding terminators, per native
// convention.
type KeyInfo struct {
	SubkeyCount   uint32
	MaxSubkeyName uint32
	ValueCount    uint32
	MaxValueName  uint32
	MaxValueData  uint32
}

// API is the native registry collaborator. regkit consumes it and never
// implements the underlying persistence itself. All calls are synchronous
// and blocking; a call either completes or reports a non-zero Status.
type API interface {
	// ConnectRoot yields a handle for a well-known root, optionally on a
	// remote host (host == "" means the local machine). Local roots return
	// the predefined pseudo-handle; remote roots return a real handle that
	// must be closed.
	ConnectRoot(host string, root types.Root) (Handle, Status)

	// Open opens an existing subkey of parent. subpath may span multiple
	// separator-joined segments; "" opens parent itself again.
	Open(parent Handle, subpath string, access types.Access, tx Tx) (Handle, Status)

	// Create opens subpath under parent, creating it if absent. The
	// disposition distinguishes "created" from "already existed"; the call
	// itself does not fail on pre-existence.
	Create(parent Handle, subpath string, access types.Access, tx Tx) (Handle, Disposition, Status)

	// Close releases a key handle obtained from ConnectRoot, Open or Create.
	Close(h Handle) Status

	// QueryInfo reports child/value counts and maximum name/data lengths.
	QueryInfo(h Handle) (KeyInfo, Status)

	// EnumKey returns the name of the subkey at the zero-based index,
	// StatusNoMoreItems past the end.
	EnumKey(h Handle, index uint32) (string, Status)

	// EnumValue returns the value entry at the zero-based index,
	// StatusNoMoreItems past the end.
	EnumValue(h Handle, index uint32) (name string, t types.RegType, data []byte, st Status)

	// QueryValue reads one value by name ("" addresses the default value).
	QueryValue(h Handle, name string) (t types.RegType, data []byte, st Status)

	// SetValue writes one value by name.
	SetValue(h Handle, name string, t types.RegType, data []byte) Status

	// DeleteValue removes one value by name.
	DeleteValue(h Handle, name string) Status

	// DeleteKey atomically removes the subkey at subpath under parent.
	// Fails with StatusDirNotEmpty when the key still has subkeys.
	DeleteKey(parent Handle, subpath string) Status

	// RenameKey atomically renames the subkey at subpath under parent to
	// newName within the same parent. No handle is opened. Fails with
	// StatusAccessDenied when the target name already exists.
	RenameKey(parent Handle, subpath, newName string) Status

	// TxBegin starts a native transaction with the given timeout
	// (0 = infinite) and optional human-readable description.
	TxBegin(timeout time.Duration, description string) (Tx, Status)

	// TxCommit commits the transaction. The handle stays valid until TxClose.
	TxCommit(tx Tx) Status

	// TxRollback rolls the transaction back. The handle stays valid until TxClose.
	TxRollback(tx Tx) Status

	// TxStatus polls the transaction outcome.
	TxStatus(tx Tx) (TxOutcome, Status)

	// TxClose releases the native transaction handle.
	TxClose(tx Tx) Status
}
