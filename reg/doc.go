// Package reg provides path-addressed, typed access to a hierarchical
// registry through a pluggable native backend.
//
// # Overview
//
// A Key is a pure value addressing an entry: a well-known root, an optional
// remote host, and canonical path segments. Keys are built by the root
// constructors and refined with Resolve, which is pure string processing:
//
//	k := reg.LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\App`)
//
// A Registry binds keys to a native backend and carries all operations:
// typed value reads and writes, key create/delete/rename, existence probes,
// and lazy enumeration.
//
//	r, err := reg.Live() // Windows registry; use reg.New(memreg.New()) elsewhere
//	v, err := r.GetValue(k, "InstallDir")
//
// # Enumeration
//
// Children, Values and Walk return lazy, closeable cursors. Each cursor
// owns at most one native handle at a time and releases it on exhaustion,
// on failure, or on an early Close. Walks are iterative with an explicit
// stack, so traversal depth is bounded by memory, not the call stack.
//
// # Errors
//
// Every failure is a *types.Error with a stable kind and the offending
// key's full path. Failures during cleanup attach to the in-flight primary
// error as suppressed secondaries instead of replacing it; see
// Handle.CloseInto.
//
// # Concurrency
//
// All native calls are synchronous and blocking. Registry itself is
// stateless and may be shared, but Handles, Transactions, and cursors are
// single-owner, single-goroutine objects.
package reg
