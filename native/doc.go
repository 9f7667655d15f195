// Package native defines the seam between regkit and the platform's
// registry primitives.
//
// # Overview
//
// Everything regkit does ultimately lands on the API interface: open/create/
// close a key handle, enumerate sub-entries and values by index, query/set/
// delete values, rename or delete keys, connect to a remote host, and the
// optional kernel transaction operations. regkit never interprets a handle;
// it only moves handles between calls.
//
// Calls report a Status using the platform's error numbers. Status zero is
// success; everything else is translated into the regkit error taxonomy by
// the reg package.
//
// Two implementations exist:
//   - the Windows syscall backend behind the windows build tag (Live)
//   - memreg.Registry, an in-memory implementation for tests and demos
package native
