package types

import (
	"fmt"
	"strings"
)

// RegType enumerates the registry value kinds this library models.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE     RegType = 0
	REG_SZ       RegType = 1
	REG_BINARY   RegType = 3
	REG_DWORD    RegType = 4
	REG_MULTI_SZ RegType = 7
	REG_QWORD    RegType = 11
)

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}

// ParseRegType maps a "REG_*" name (case-insensitive) to its RegType.
func ParseRegType(s string) (RegType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REG_NONE", "NONE":
		return REG_NONE, nil
	case "REG_SZ", "SZ", "STRING":
		return REG_SZ, nil
	case "REG_BINARY", "BINARY":
		return REG_BINARY, nil
	case "REG_DWORD", "DWORD":
		return REG_DWORD, nil
	case "REG_MULTI_SZ", "MULTI_SZ", "MULTISZ":
		return REG_MULTI_SZ, nil
	case "REG_QWORD", "QWORD":
		return REG_QWORD, nil
	default:
		return REG_NONE, fmt.Errorf("unknown registry value type %q", s)
	}
}
