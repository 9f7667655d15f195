// Package types defines the public contract shared by all regkit packages.
//
// # Overview
//
// This package holds the stable, dependency-free building blocks:
//   - RegType: the closed set of registry value kinds
//   - Value: a named, typed datum (tagged union over the kinds)
//   - Root / Access: well-known hierarchy roots and the rights bitmask
//   - Filter: value-enumeration predicate
//   - Error / ErrKind: the closed error taxonomy, including suppressed
//     secondary failures
//
// # Error Taxonomy
//
// Every failure surfaced by regkit is a *types.Error with a stable Kind.
// Callers branch with errors.Is against the exported sentinels:
//
//	if errors.Is(err, types.ErrNotFound) { ... }
//
// Errors carry the full path of the offending key (and remote host name when
// applicable). Failures that occur while another error is already propagating,
// most commonly a native close failing during cleanup, are attached to the
// primary error's Suppressed list instead of replacing it.
package types
