package native

import "fmt"

// Status is a native return code. Zero is success. Non-zero values use the
// platform's error numbering; the mapped subset below is closed, everything
// else translates to a generic native failure carrying the raw code.
type Status uint32

const (
	StatusOK               Status = 0
	StatusFileNotFound     Status = 2
	StatusAccessDenied     Status = 5
	StatusInvalidHandle    Status = 6
	StatusInvalidParameter Status = 87
	StatusDirNotEmpty      Status = 145
	StatusAlreadyExists    Status = 183
	StatusMoreData         Status = 234
	StatusNoMoreItems      Status = 259
)

// OK reports success.
func (s Status) OK() bool { return s == StatusOK }

// String implements the Stringer interface for Status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFileNotFound:
		return "file not found"
	case StatusAccessDenied:
		return "access denied"
	case StatusInvalidHandle:
		return "invalid handle"
	case StatusInvalidParameter:
		return "invalid parameter"
	case StatusDirNotEmpty:
		return "directory not empty"
	case StatusAlreadyExists:
		return "already exists"
	case StatusMoreData:
		return "more data"
	case StatusNoMoreItems:
		return "no more items"
	default:
		return fmt.Sprintf("status %d", uint32(s))
	}
}
