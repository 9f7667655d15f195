package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/regkit/pkg/types"
)

const (
	dwordSize = 4
	qwordSize = 8
)

// Encode marshals a value's payload into the raw byte form the native
// subsystem stores. The encoding is total over the closed kind set.
func Encode(v types.Value) ([]byte, error) {
	switch v.Type {
	case types.REG_SZ:
		return encodeUTF16(nil, v.Str), nil

	case types.REG_MULTI_SZ:
		// Each entry null-terminated, then one extra null code unit closes
		// the list (an empty trailing string).
		var buf []byte
		for _, s := range v.Strs {
			buf = encodeUTF16(buf, s)
		}
		return append(buf, 0, 0), nil

	case types.REG_DWORD:
		buf := make([]byte, dwordSize)
		binary.LittleEndian.PutUint32(buf, v.Dword)
		return buf, nil

	case types.REG_QWORD:
		buf := make([]byte, qwordSize)
		binary.LittleEndian.PutUint64(buf, v.Qword)
		return buf, nil

	case types.REG_BINARY, types.REG_NONE:
		return bytes.Clone(v.Data), nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, v.Type)
	}
}

// Decode unmarshals raw native bytes into a Value of the given name and type.
func Decode(name string, t types.RegType, data []byte) (types.Value, error) {
	switch t {
	case types.REG_SZ:
		s, err := decodeString(data)
		if err != nil {
			return types.Value{}, err
		}
		return types.String(name, s), nil

	case types.REG_MULTI_SZ:
		ss, err := decodeMultiString(data)
		if err != nil {
			return types.Value{}, err
		}
		return types.MultiString(name, ss), nil

	case types.REG_DWORD:
		if len(data) != dwordSize {
			return types.Value{}, fmt.Errorf("%w: REG_DWORD payload is %d bytes, want %d", ErrMalformed, len(data), dwordSize)
		}
		return types.DWord(name, binary.LittleEndian.Uint32(data)), nil

	case types.REG_QWORD:
		if len(data) != qwordSize {
			return types.Value{}, fmt.Errorf("%w: REG_QWORD payload is %d bytes, want %d", ErrMalformed, len(data), qwordSize)
		}
		return types.QWord(name, binary.LittleEndian.Uint64(data)), nil

	case types.REG_BINARY:
		return types.Binary(name, data), nil

	case types.REG_NONE:
		return types.None(name, data), nil

	default:
		return types.Value{}, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
}

// decodeString decodes a single null-terminated UTF-16LE string. A missing
// terminator is a malformed-value failure, never a silent truncation.
func decodeString(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("%w: REG_SZ payload has odd length %d", ErrMalformed, len(data))
	}
	end := terminatorIndex(data)
	if end < 0 {
		return "", fmt.Errorf("%w: REG_SZ payload missing null terminator", ErrMalformed)
	}
	return decodeUTF16(data[:end])
}

// decodeMultiString decodes a null-terminated string list. The final
// empty-string list terminator may be absent (it is back-filled implicitly)
// but every individual entry must carry its own terminator.
func decodeMultiString(data []byte) ([]string, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: REG_MULTI_SZ payload has odd length %d", ErrMalformed, len(data))
	}
	var result []string
	for len(data) > 0 {
		end := terminatorIndex(data)
		if end < 0 {
			return nil, fmt.Errorf("%w: REG_MULTI_SZ entry missing null terminator", ErrMalformed)
		}
		if end == 0 {
			// Empty string terminates the list.
			break
		}
		s, err := decodeUTF16(data[:end])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
		data = data[end+2:]
	}
	return result, nil
}
