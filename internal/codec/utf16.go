package codec

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// utf16le is the UTF-16 little-endian codec used for all string payloads.
// The native subsystem never emits a BOM inside value data.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeUTF16 appends s as UTF-16LE code units plus a null terminator to dst.
func encodeUTF16(dst []byte, s string) []byte {
	for _, u := range utf16.Encode([]rune(s)) {
		dst = append(dst, byte(u), byte(u>>8))
	}
	return append(dst, 0, 0)
}

// decodeUTF16 converts UTF-16LE bytes (no terminator) to a Go string.
func decodeUTF16(data []byte) (string, error) {
	decoded, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return string(decoded), nil
}

// terminatorIndex returns the byte offset of the first null UTF-16 code unit
// in data, or -1 if none is present. data must have even length.
func terminatorIndex(data []byte) int {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}
