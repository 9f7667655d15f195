package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func Test_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    types.Value
	}{
		{"empty string", types.String("s", "")},
		{"ascii string", types.String("s", "hello")},
		{"unicode string", types.String("s", "héllo wörld")},
		{"non-BMP string", types.String("s", "emoji \U0001F600 pair")},
		{"empty multi", types.MultiString("m", nil)},
		{"single multi", types.MultiString("m", []string{"one"})},
		{"several multi", types.MultiString("m", []string{"one", "two", "three"})},
		{"unicode multi", types.MultiString("m", []string{"ärst", "\U0001F680"})},
		{"dword zero", types.DWord("d", 0)},
		{"dword max", types.DWord("d", 0xFFFFFFFF)},
		{"qword", types.QWord("q", 0x1122334455667788)},
		{"binary empty", types.Binary("b", nil)},
		{"binary", types.Binary("b", []byte{0, 1, 2, 0xFF})},
		{"none", types.None("n", []byte{0xDE, 0xAD})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.v)
			require.NoError(t, err)

			got, err := Decode(tt.v.Name, tt.v.Type, raw)
			require.NoError(t, err)
			assert.True(t, tt.v.Equal(got), "round trip mismatch: %#v != %#v", tt.v, got)
		})
	}
}

func Test_Encode_WireShape(t *testing.T) {
	t.Run("string is UTF-16LE with terminator", func(t *testing.T) {
		raw, err := Encode(types.String("s", "Hi"))
		require.NoError(t, err)
		assert.Equal(t, []byte{'H', 0, 'i', 0, 0, 0}, raw)
	})

	t.Run("multi string has entry and list terminators", func(t *testing.T) {
		raw, err := Encode(types.MultiString("m", []string{"a", "b"}))
		require.NoError(t, err)
		assert.Equal(t, []byte{'a', 0, 0, 0, 'b', 0, 0, 0, 0, 0}, raw)
	})

	t.Run("empty multi string is a lone list terminator", func(t *testing.T) {
		raw, err := Encode(types.MultiString("m", nil))
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0}, raw)
	})

	t.Run("dword is little-endian", func(t *testing.T) {
		raw, err := Encode(types.DWord("d", 0x01020304))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, raw)
	})

	t.Run("qword is little-endian", func(t *testing.T) {
		raw, err := Encode(types.QWord("q", 0x0102030405060708))
		require.NoError(t, err)
		assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, raw)
	})

	t.Run("binary passes through", func(t *testing.T) {
		raw, err := Encode(types.Binary("b", []byte{9, 8, 7}))
		require.NoError(t, err)
		assert.Equal(t, []byte{9, 8, 7}, raw)
	})

	t.Run("unknown type refused", func(t *testing.T) {
		_, err := Encode(types.Value{Name: "x", Type: types.RegType(99)})
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func Test_Decode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		typ  types.RegType
		data []byte
	}{
		{"string missing terminator", types.REG_SZ, []byte{'H', 0, 'i', 0}},
		{"string odd length", types.REG_SZ, []byte{'H', 0, 0}},
		{"multi entry missing terminator", types.REG_MULTI_SZ, []byte{'a', 0}},
		{"multi odd length", types.REG_MULTI_SZ, []byte{'a', 0, 0}},
		{"dword short", types.REG_DWORD, []byte{1, 2}},
		{"dword long", types.REG_DWORD, []byte{1, 2, 3, 4, 5}},
		{"qword short", types.REG_QWORD, []byte{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("v", tt.typ, tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	t.Run("unknown type refused", func(t *testing.T) {
		_, err := Decode("v", types.RegType(99), nil)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func Test_Decode_MultiString_BackfillsListTerminator(t *testing.T) {
	// Buffer ends after the last entry's terminator, before the final
	// empty-string list terminator. Tolerated per native behavior.
	raw := []byte{'a', 0, 0, 0, 'b', 0, 0, 0}

	v, err := Decode("m", types.REG_MULTI_SZ, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Strs)
}

func Test_Decode_MultiString_StopsAtEmptyEntry(t *testing.T) {
	// An empty entry is the list terminator; anything after it is ignored.
	raw := []byte{'a', 0, 0, 0, 0, 0, 'z', 0, 0, 0}

	v, err := Decode("m", types.REG_MULTI_SZ, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v.Strs)
}

func Test_Decode_EmptyBuffers(t *testing.T) {
	t.Run("empty REG_SZ is malformed", func(t *testing.T) {
		_, err := Decode("s", types.REG_SZ, nil)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("empty REG_MULTI_SZ is an empty list", func(t *testing.T) {
		v, err := Decode("m", types.REG_MULTI_SZ, nil)
		require.NoError(t, err)
		assert.Empty(t, v.Strs)
	})

	t.Run("empty REG_BINARY is fine", func(t *testing.T) {
		v, err := Decode("b", types.REG_BINARY, nil)
		require.NoError(t, err)
		assert.Empty(t, v.Data)
	})
}

func Test_Decode_StringIgnoresBytesPastTerminator(t *testing.T) {
	raw := []byte{'H', 0, 0, 0, 'x', 0}
	v, err := Decode("s", types.REG_SZ, raw)
	require.NoError(t, err)
	assert.Equal(t, "H", v.Str)
}

func Test_Decode_CopiesBinaryData(t *testing.T) {
	raw := []byte{1, 2, 3}
	v, err := Decode("b", types.REG_BINARY, raw)
	require.NoError(t, err)

	raw[0] = 99
	assert.Equal(t, byte(1), v.Data[0], "decoded value must not alias the native buffer")
}
