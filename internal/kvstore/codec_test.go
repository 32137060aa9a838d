package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestUint32Codec(t *testing.T) {
	for _, v := range []uint32{0, 1, 4294967295} {
		got, err := DecodeUint32(EncodeUint32(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := DecodeUint32([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestUint64Codec(t *testing.T) {
	got, err := DecodeUint64(EncodeUint64(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), got)

	_, err = DecodeUint64(EncodeUint32(1))
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestBoolCodec(t *testing.T) {
	for _, v := range []bool{true, false} {
		got, err := DecodeBool(EncodeBool(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := DecodeBool([]byte{2})
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestStringMapCodec_InvalidUTF8(t *testing.T) {
	m := map[string]string{
		"":          "empty key",
		"\xff\xfe":  "\x80invalid",
		"color":     "",
		"multibyte": "日本語",
	}
	got, err := DecodeStringMap(EncodeStringMap(m))
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestStringMapCodec_Deterministic(t *testing.T) {
	m := map[string]string{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, EncodeStringMap(m), EncodeStringMap(map[string]string{"c": "3", "a": "1", "b": "2"}))
}

func TestBytesMapCodec_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.MapOf(rapid.String(), rapid.SliceOf(rapid.Byte())).Draw(t, "m")

		got, err := DecodeBytesMap(EncodeBytesMap(m))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != len(m) {
			t.Fatalf("len %d != %d", len(got), len(m))
		}
		for k, v := range m {
			if string(got[k]) != string(v) {
				t.Fatalf("value mismatch for %q", k)
			}
		}
	})
}

func TestStringsCodec(t *testing.T) {
	values := []string{"Genesis", "", "\xffraw"}
	got, err := DecodeStrings(EncodeStrings(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestDecode_Truncated(t *testing.T) {
	buf := EncodeStringMap(map[string]string{"key": "value"})

	for i := range len(buf) {
		_, err := DecodeStringMap(buf[:i])
		assert.ErrorIs(t, err, ErrCorruptValue, "prefix of length %d", i)
	}

	_, err := DecodeStringMap(append(buf, 0))
	assert.ErrorIs(t, err, ErrCorruptValue)
}
