package types

import (
	"bytes"
	"fmt"
	"slices"
)

// Value is a named, typed registry datum. Exactly one payload field is
// meaningful, selected by Type: Str for REG_SZ, Strs for REG_MULTI_SZ,
// Dword for REG_DWORD, Qword for REG_QWORD, and Data for REG_BINARY and
// REG_NONE (opaque bytes, no interpretation). Values are immutable by
// convention; construct them with the helpers below.
type Value struct {
	Name string
	Type RegType

	Str   string
	Strs  []string
	Dword uint32
	Qword uint64
	Data  []byte
}

// String constructs a REG_SZ value.
func String(name, s string) Value {
	return Value{Name: name, Type: REG_SZ, Str: s}
}

// MultiString constructs a REG_MULTI_SZ value. The slice is copied.
// Empty entries are dropped: the wire format uses an empty string as the
// list terminator, so they cannot be represented.
func MultiString(name string, ss []string) Value {
	kept := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return Value{Name: name, Type: REG_MULTI_SZ, Strs: kept}
}

// DWord constructs a REG_DWORD value.
func DWord(name string, v uint32) Value {
	return Value{Name: name, Type: REG_DWORD, Dword: v}
}

// QWord constructs a REG_QWORD value.
func QWord(name string, v uint64) Value {
	return Value{Name: name, Type: REG_QWORD, Qword: v}
}

// Binary constructs a REG_BINARY value. The slice is copied.
func Binary(name string, data []byte) Value {
	return Value{Name: name, Type: REG_BINARY, Data: bytes.Clone(data)}
}

// None constructs a REG_NONE value carrying semantically opaque bytes.
func None(name string, data []byte) Value {
	return Value{Name: name, Type: REG_NONE, Data: bytes.Clone(data)}
}

// Equal reports whether two values have the same name, type, and payload.
// Only the payload selected by Type participates in the comparison.
func (v Value) Equal(o Value) bool {
	if v.Name != o.Name || v.Type != o.Type {
		return false
	}
	switch v.Type {
	case REG_SZ:
		return v.Str == o.Str
	case REG_MULTI_SZ:
		return slices.Equal(v.Strs, o.Strs)
	case REG_DWORD:
		return v.Dword == o.Dword
	case REG_QWORD:
		return v.Qword == o.Qword
	default:
		return bytes.Equal(v.Data, o.Data)
	}
}

// GoString aids test failure output.
func (v Value) GoString() string {
	switch v.Type {
	case REG_SZ:
		return fmt.Sprintf("types.String(%q, %q)", v.Name, v.Str)
	case REG_MULTI_SZ:
		return fmt.Sprintf("types.MultiString(%q, %q)", v.Name, v.Strs)
	case REG_DWORD:
		return fmt.Sprintf("types.DWord(%q, %d)", v.Name, v.Dword)
	case REG_QWORD:
		return fmt.Sprintf("types.QWord(%q, %d)", v.Name, v.Qword)
	case REG_BINARY:
		return fmt.Sprintf("types.Binary(%q, %x)", v.Name, v.Data)
	default:
		return fmt.Sprintf("types.None(%q, %x)", v.Name, v.Data)
	}
}

// Filter selects values during enumeration. A zero Filter matches everything.
// Name, when non-nil, must accept the value's name; Types, when non-empty,
// must contain the value's type. Filtering happens after decode.
type Filter struct {
	Name  func(name string) bool
	Types []RegType
}

// Match reports whether v passes the filter. A nil filter matches everything.
func (f *Filter) Match(v Value) bool {
	if f == nil {
		return true
	}
	if f.Name != nil && !f.Name(v.Name) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, v.Type) {
		return false
	}
	return true
}
