//go:build windows

package native

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/regkit/pkg/types"
)

// winAPI drives the live Windows registry through advapi32/ktmw32.
// Transacted variants are used whenever a transaction handle is supplied.
type winAPI struct{}

// Live returns the Windows registry backend.
func Live() (API, error) {
	return winAPI{}, nil
}

var (
	advapi32 = windows.NewLazySystemDLL("advapi32.dll")
	ktmw32   = windows.NewLazySystemDLL("ktmw32.dll")

	procRegOpenKeyExW           = advapi32.NewProc("RegOpenKeyExW")
	procRegOpenKeyTransactedW   = advapi32.NewProc("RegOpenKeyTransactedW")
	procRegCreateKeyExW         = advapi32.NewProc("RegCreateKeyExW")
	procRegCreateKeyTransactedW = advapi32.NewProc("RegCreateKeyTransactedW")
	procRegCloseKey             = advapi32.NewProc("RegCloseKey")
	procRegQueryInfoKeyW        = advapi32.NewProc("RegQueryInfoKeyW")
	procRegEnumKeyExW           = advapi32.NewProc("RegEnumKeyExW")
	procRegEnumValueW           = advapi32.NewProc("RegEnumValueW")
	procRegQueryValueExW        = advapi32.NewProc("RegQueryValueExW")
	procRegSetValueExW          = advapi32.NewProc("RegSetValueExW")
	procRegDeleteValueW         = advapi32.NewProc("RegDeleteValueW")
	procRegDeleteKeyW           = advapi32.NewProc("RegDeleteKeyW")
	procRegRenameKey            = advapi32.NewProc("RegRenameKey")
	procRegConnectRegistryW     = advapi32.NewProc("RegConnectRegistryW")

	procCreateTransaction         = ktmw32.NewProc("CreateTransaction")
	procCommitTransaction         = ktmw32.NewProc("CommitTransaction")
	procRollbackTransaction       = ktmw32.NewProc("RollbackTransaction")
	procGetTransactionInformation = ktmw32.NewProc("GetTransactionInformation")
)

const (
	// Name buffers per native limits: key names max 255, value names max
	// 16383 UTF-16 code units.
	maxKeyNameLen   = 256
	maxValueNameLen = 16384
)

// Transaction outcome values reported by GetTransactionInformation.
const (
	txOutcomeUndetermined = 1
	txOutcomeCommitted    = 2
	txOutcomeAborted      = 3
)

func utf16Ptr(s string) (*uint16, Status) {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		// Embedded NUL in the name.
		return nil, StatusInvalidParameter
	}
	return p, StatusOK
}

func callStatus(r1 uintptr) Status {
	return Status(uint32(r1))
}

func (winAPI) ConnectRoot(host string, root types.Root) (Handle, Status) {
	if host == "" {
		return RootHandle(root), StatusOK
	}
	machine, st := utf16Ptr(`\\` + host)
	if !st.OK() {
		return InvalidHandle, st
	}
	var h windows.Handle
	r1, _, _ := procRegConnectRegistryW.Call(
		uintptr(unsafe.Pointer(machine)),
		uintptr(root),
		uintptr(unsafe.Pointer(&h)),
	)
	if st := callStatus(r1); !st.OK() {
		return InvalidHandle, st
	}
	return Handle(h), StatusOK
}

func (winAPI) Open(parent Handle, subpath string, access types.Access, tx Tx) (Handle, Status) {
	sub, st := utf16Ptr(subpath)
	if !st.OK() {
		return InvalidHandle, st
	}
	var h windows.Handle
	var r1 uintptr
	if tx == NoTx {
		r1, _, _ = procRegOpenKeyExW.Call(
			uintptr(parent),
			uintptr(unsafe.Pointer(sub)),
			0,
			uintptr(access),
			uintptr(unsafe.Pointer(&h)),
		)
	} else {
		r1, _, _ = procRegOpenKeyTransactedW.Call(
			uintptr(parent),
			uintptr(unsafe.Pointer(sub)),
			0,
			uintptr(access),
			uintptr(unsafe.Pointer(&h)),
			uintptr(tx),
			0,
		)
	}
	if st := callStatus(r1); !st.OK() {
		return InvalidHandle, st
	}
	return Handle(h), StatusOK
}

func (winAPI) Create(parent Handle, subpath string, access types.Access, tx Tx) (Handle, Disposition, Status) {
	sub, st := utf16Ptr(subpath)
	if !st.OK() {
		return InvalidHandle, 0, st
	}
	var (
		h    windows.Handle
		disp uint32
		r1   uintptr
	)
	if tx == NoTx {
		r1, _, _ = procRegCreateKeyExW.Call(
			uintptr(parent),
			uintptr(unsafe.Pointer(sub)),
			0, // reserved
			0, // class
			0, // REG_OPTION_NON_VOLATILE
			uintptr(access),
			0, // default security
			uintptr(unsafe.Pointer(&h)),
			uintptr(unsafe.Pointer(&disp)),
		)
	} else {
		r1, _, _ = procRegCreateKeyTransactedW.Call(
			uintptr(parent),
			uintptr(unsafe.Pointer(sub)),
			0,
			0,
			0,
			uintptr(access),
			0,
			uintptr(unsafe.Pointer(&h)),
			uintptr(unsafe.Pointer(&disp)),
			uintptr(tx),
			0,
		)
	}
	if st := callStatus(r1); !st.OK() {
		return InvalidHandle, 0, st
	}
	return Handle(h), Disposition(disp), StatusOK
}

func (winAPI) Close(h Handle) Status {
	// Predefined pseudo-handles are never closed.
	if uint32(h)&0x80000000 != 0 && uintptr(h) < 0x80001000 {
		return StatusOK
	}
	r1, _, _ := procRegCloseKey.Call(uintptr(h))
	return callStatus(r1)
}

func (winAPI) QueryInfo(h Handle) (KeyInfo, Status) {
	var info KeyInfo
	r1, _, _ := procRegQueryInfoKeyW.Call(
		uintptr(h),
		0, // class
		0, // class length
		0, // reserved
		uintptr(unsafe.Pointer(&info.SubkeyCount)),
		uintptr(unsafe.Pointer(&info.MaxSubkeyName)),
		0, // max class length
		uintptr(unsafe.Pointer(&info.ValueCount)),
		uintptr(unsafe.Pointer(&info.MaxValueName)),
		uintptr(unsafe.Pointer(&info.MaxValueData)),
		0, // security descriptor size
		0, // last write time
	)
	if st := callStatus(r1); !st.OK() {
		return KeyInfo{}, st
	}
	return info, StatusOK
}

func (winAPI) EnumKey(h Handle, index uint32) (string, Status) {
	buf := make([]uint16, maxKeyNameLen)
	n := uint32(len(buf))
	r1, _, _ := procRegEnumKeyExW.Call(
		uintptr(h),
		uintptr(index),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&n)),
		0, // reserved
		0, // class
		0, // class length
		0, // last write time
	)
	if st := callStatus(r1); !st.OK() {
		return "", st
	}
	return windows.UTF16ToString(buf[:n]), StatusOK
}

func (winAPI) EnumValue(h Handle, index uint32) (string, types.RegType, []byte, Status) {
	nameBuf := make([]uint16, maxValueNameLen)

	// First call sizes the data buffer; second call fetches it. The value
	// can grow between the calls, so retry on MoreData.
	for {
		nameLen := uint32(len(nameBuf))
		var typ, dataLen uint32
		r1, _, _ := procRegEnumValueW.Call(
			uintptr(h),
			uintptr(index),
			uintptr(unsafe.Pointer(&nameBuf[0])),
			uintptr(unsafe.Pointer(&nameLen)),
			0, // reserved
			uintptr(unsafe.Pointer(&typ)),
			0, // data: sizing pass
			uintptr(unsafe.Pointer(&dataLen)),
		)
		if st := callStatus(r1); !st.OK() && st != StatusMoreData {
			return "", 0, nil, st
		}

		data := make([]byte, dataLen)
		var dataPtr *byte
		if dataLen > 0 {
			dataPtr = &data[0]
		}
		nameLen = uint32(len(nameBuf))
		r1, _, _ = procRegEnumValueW.Call(
			uintptr(h),
			uintptr(index),
			uintptr(unsafe.Pointer(&nameBuf[0])),
			uintptr(unsafe.Pointer(&nameLen)),
			0,
			uintptr(unsafe.Pointer(&typ)),
			uintptr(unsafe.Pointer(dataPtr)),
			uintptr(unsafe.Pointer(&dataLen)),
		)
		st := callStatus(r1)
		if st == StatusMoreData {
			continue
		}
		if !st.OK() {
			return "", 0, nil, st
		}
		return windows.UTF16ToString(nameBuf[:nameLen]), types.RegType(typ), data[:dataLen], StatusOK
	}
}

func (winAPI) QueryValue(h Handle, name string) (types.RegType, []byte, Status) {
	namePtr, st := utf16Ptr(name)
	if !st.OK() {
		return 0, nil, st
	}
	for {
		var typ, dataLen uint32
		r1, _, _ := procRegQueryValueExW.Call(
			uintptr(h),
			uintptr(unsafe.Pointer(namePtr)),
			0, // reserved
			uintptr(unsafe.Pointer(&typ)),
			0, // data: sizing pass
			uintptr(unsafe.Pointer(&dataLen)),
		)
		if st := callStatus(r1); !st.OK() && st != StatusMoreData {
			return 0, nil, st
		}

		data := make([]byte, dataLen)
		var dataPtr *byte
		if dataLen > 0 {
			dataPtr = &data[0]
		}
		r1, _, _ = procRegQueryValueExW.Call(
			uintptr(h),
			uintptr(unsafe.Pointer(namePtr)),
			0,
			uintptr(unsafe.Pointer(&typ)),
			uintptr(unsafe.Pointer(dataPtr)),
			uintptr(unsafe.Pointer(&dataLen)),
		)
		st := callStatus(r1)
		if st == StatusMoreData {
			continue
		}
		if !st.OK() {
			return 0, nil, st
		}
		return types.RegType(typ), data[:dataLen], StatusOK
	}
}

func (winAPI) SetValue(h Handle, name string, t types.RegType, data []byte) Status {
	namePtr, st := utf16Ptr(name)
	if !st.OK() {
		return st
	}
	var dataPtr *byte
	if len(data) > 0 {
		dataPtr = &data[0]
	}
	r1, _, _ := procRegSetValueExW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(namePtr)),
		0, // reserved
		uintptr(t),
		uintptr(unsafe.Pointer(dataPtr)),
		uintptr(len(data)),
	)
	return callStatus(r1)
}

func (winAPI) DeleteValue(h Handle, name string) Status {
	namePtr, st := utf16Ptr(name)
	if !st.OK() {
		return st
	}
	r1, _, _ := procRegDeleteValueW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(namePtr)),
	)
	return callStatus(r1)
}

func (winAPI) DeleteKey(parent Handle, subpath string) Status {
	sub, st := utf16Ptr(subpath)
	if !st.OK() {
		return st
	}
	r1, _, _ := procRegDeleteKeyW.Call(
		uintptr(parent),
		uintptr(unsafe.Pointer(sub)),
	)
	return callStatus(r1)
}

func (winAPI) RenameKey(parent Handle, subpath, newName string) Status {
	sub, st := utf16Ptr(subpath)
	if !st.OK() {
		return st
	}
	next, st := utf16Ptr(newName)
	if !st.OK() {
		return st
	}
	r1, _, _ := procRegRenameKey.Call(
		uintptr(parent),
		uintptr(unsafe.Pointer(sub)),
		uintptr(unsafe.Pointer(next)),
	)
	return callStatus(r1)
}

func (winAPI) TxBegin(timeout time.Duration, description string) (Tx, Status) {
	var desc *uint16
	if description != "" {
		var st Status
		desc, st = utf16Ptr(description)
		if !st.OK() {
			return NoTx, st
		}
	}
	ms := uint32(timeout / time.Millisecond)
	h, _, err := procCreateTransaction.Call(
		0, // security attributes
		0, // UOW
		0, // create options
		0, // isolation level
		0, // isolation flags
		uintptr(ms),
		uintptr(unsafe.Pointer(desc)),
	)
	if windows.Handle(h) == windows.InvalidHandle {
		if errno, ok := err.(windows.Errno); ok {
			return NoTx, Status(uint32(errno))
		}
		return NoTx, StatusInvalidHandle
	}
	return Tx(h), StatusOK
}

func (winAPI) TxCommit(tx Tx) Status {
	r1, _, err := procCommitTransaction.Call(uintptr(tx))
	return boolCallStatus(r1, err)
}

func (winAPI) TxRollback(tx Tx) Status {
	r1, _, err := procRollbackTransaction.Call(uintptr(tx))
	return boolCallStatus(r1, err)
}

func (winAPI) TxStatus(tx Tx) (TxOutcome, Status) {
	var outcome uint32
	r1, _, err := procGetTransactionInformation.Call(
		uintptr(tx),
		uintptr(unsafe.Pointer(&outcome)),
		0, // isolation level
		0, // isolation flags
		0, // timeout
		0, // description length
		0, // description
	)
	if st := boolCallStatus(r1, err); !st.OK() {
		return TxUnknown, st
	}
	switch outcome {
	case txOutcomeCommitted:
		return TxCommitted, StatusOK
	case txOutcomeAborted:
		return TxRolledBack, StatusOK
	case txOutcomeUndetermined:
		return TxActive, StatusOK
	default:
		return TxUnknown, StatusOK
	}
}

func (winAPI) TxClose(tx Tx) Status {
	if err := windows.CloseHandle(windows.Handle(tx)); err != nil {
		if errno, ok := err.(windows.Errno); ok {
			return Status(uint32(errno))
		}
		return StatusInvalidHandle
	}
	return StatusOK
}

// boolCallStatus maps a BOOL-returning syscall to a Status.
func boolCallStatus(r1 uintptr, err error) Status {
	if r1 != 0 {
		return StatusOK
	}
	if errno, ok := err.(windows.Errno); ok && errno != 0 {
		return Status(uint32(errno))
	}
	return StatusInvalidHandle
}
