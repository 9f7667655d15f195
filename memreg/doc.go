// Package memreg is an in-memory implementation of the native registry API.
//
// # Overview
//
// memreg exists so the rest of regkit can be exercised without a live
// Windows registry: unit tests, examples, and the CLI's demo mode all run
// against it. It preserves the native behaviors the library's edge cases
// depend on:
//
//   - case-insensitive, insertion-ordered key and value enumeration
//   - rename onto an existing target fails with access-denied
//   - deleting a key that still has subkeys fails with dir-not-empty
//   - enumerating past the end reports no-more-items
//   - transactions snapshot the forest at begin and publish on commit
//
// Fault injection fields (FailNextClose, EnumKeyFailAt, ...) and the
// Opens/Closes counters support tests for cleanup ordering and the
// close-once discipline.
//
// A Registry is not safe for concurrent use; neither is the native
// collaborator it stands in for.
package memreg
