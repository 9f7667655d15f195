package types

import (
	"fmt"
	"strings"
)

// Root identifies one of the fixed top-level entry points into the hierarchy.
type Root uint32

// Numbering follows the native HKEY_* handle values so a Root can be handed
// to the native subsystem directly.
const (
	ClassesRoot   Root = 0x80000000
	CurrentUser   Root = 0x80000001
	LocalMachine  Root = 0x80000002
	Users         Root = 0x80000003
	CurrentConfig Root = 0x80000005
)

// String implements the Stringer interface for Root.
func (r Root) String() string {
	switch r {
	case ClassesRoot:
		return "HKEY_CLASSES_ROOT"
	case CurrentUser:
		return "HKEY_CURRENT_USER"
	case LocalMachine:
		return "HKEY_LOCAL_MACHINE"
	case Users:
		return "HKEY_USERS"
	case CurrentConfig:
		return "HKEY_CURRENT_CONFIG"
	default:
		return fmt.Sprintf("UNKNOWN_ROOT_%#x", uint32(r))
	}
}

// ParseRoot maps a root name (long "HKEY_*" or short "HKLM" style,
// case-insensitive) to its Root.
func ParseRoot(s string) (Root, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HKEY_CLASSES_ROOT", "HKCR":
		return ClassesRoot, nil
	case "HKEY_CURRENT_USER", "HKCU":
		return CurrentUser, nil
	case "HKEY_LOCAL_MACHINE", "HKLM":
		return LocalMachine, nil
	case "HKEY_USERS", "HKU":
		return Users, nil
	case "HKEY_CURRENT_CONFIG", "HKCC":
		return CurrentConfig, nil
	default:
		return 0, fmt.Errorf("unknown registry root %q", s)
	}
}

// Access is the rights bitmask requested when acquiring a handle.
// Bit values follow the native KEY_* definitions.
type Access uint32

const (
	AccessQueryValue       Access = 0x0001
	AccessSetValue         Access = 0x0002
	AccessCreateSubKey     Access = 0x0004
	AccessEnumerateSubKeys Access = 0x0008
	AccessNotify           Access = 0x0010
	AccessCreateLink       Access = 0x0020
	AccessWow64_64         Access = 0x0100
	AccessWow64_32         Access = 0x0200

	AccessRead    Access = 0x20019 // STANDARD_RIGHTS_READ | query | enumerate | notify
	AccessWrite   Access = 0x20006 // STANDARD_RIGHTS_WRITE | set value | create subkey
	AccessExecute Access = 0x20019
	AccessAll     Access = 0xF003F
)
