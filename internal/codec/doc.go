// Package codec marshals typed registry values to and from the raw byte
// buffers the native subsystem exchanges.
//
// # Wire Shapes
//
// Fixed-width numeric kinds (REG_DWORD, REG_QWORD) are little-endian.
// REG_SZ is a sequence of UTF-16LE code units terminated by a null code unit.
// REG_MULTI_SZ is a sequence of null-terminated UTF-16LE strings with the
// whole list terminated by one extra null code unit (an empty trailing
// string). REG_BINARY and REG_NONE pass through byte-for-byte.
//
// # Round Trip
//
// For every constructible value v:
//
//	Decode(v.Name, v.Type, Encode(v)) == v
//
// Decoding a REG_SZ buffer with no terminator is a malformed-value failure,
// not a silent truncation. Decoding a REG_MULTI_SZ buffer that ends before
// the final list terminator back-fills the terminator implicitly, but every
// individual entry must still be properly terminated.
package codec
