package kvstore

import (
	"encoding/binary"
	"slices"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// ErrCorruptValue is returned when a stored value cannot be decoded.
var ErrCorruptValue = apperrors.New("corrupt value")

// Values are encoded with fixed-width integers and 4-byte length prefixes so
// that strings (valid UTF-8 or not), byte blobs, booleans and unsigned
// integers round-trip exactly. Maps are written with sorted keys, making the
// encoding deterministic.

// EncodeUint32 encodes v as 4 big-endian bytes.
func EncodeUint32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// DecodeUint32 decodes a value written by EncodeUint32.
func DecodeUint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, ErrCorruptValue
	}
	return binary.BigEndian.Uint32(b), nil
}

// EncodeUint64 encodes v as 8 big-endian bytes.
func EncodeUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

// DecodeUint64 decodes a value written by EncodeUint64.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, ErrCorruptValue
	}
	return binary.BigEndian.Uint64(b), nil
}

// EncodeBool encodes v as a single byte.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool decodes a value written by EncodeBool.
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 || b[0] > 1 {
		return false, ErrCorruptValue
	}
	return b[0] == 1, nil
}

// EncodeStrings encodes an ordered list of strings.
func EncodeStrings(values []string) []byte {
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(values)))
	for _, v := range values {
		buf = appendLengthPrefixed(buf, []byte(v))
	}
	return buf
}

// DecodeStrings decodes a value written by EncodeStrings.
func DecodeStrings(b []byte) ([]string, error) {
	r := reader{buf: b}
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, min(int(n), len(b)/4))
	for range n {
		v, err := r.field()
		if err != nil {
			return nil, err
		}
		values = append(values, string(v))
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return values, nil
}

// EncodeStringMap encodes a string to string mapping.
func EncodeStringMap(m map[string]string) []byte {
	keys := sortedKeys(m)
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(keys)))
	for _, k := range keys {
		buf = appendLengthPrefixed(buf, []byte(k))
		buf = appendLengthPrefixed(buf, []byte(m[k]))
	}
	return buf
}

// DecodeStringMap decodes a value written by EncodeStringMap.
func DecodeStringMap(b []byte) (map[string]string, error) {
	m := make(map[string]string)
	err := decodePairs(b, func(k, v []byte) {
		m[string(k)] = string(v)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeBytesMap encodes a string to opaque bytes mapping.
func EncodeBytesMap(m map[string][]byte) []byte {
	keys := sortedKeys(m)
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(keys)))
	for _, k := range keys {
		buf = appendLengthPrefixed(buf, []byte(k))
		buf = appendLengthPrefixed(buf, m[k])
	}
	return buf
}

// DecodeBytesMap decodes a value written by EncodeBytesMap. Decoded values
// never alias b.
func DecodeBytesMap(b []byte) (map[string][]byte, error) {
	m := make(map[string][]byte)
	err := decodePairs(b, func(k, v []byte) {
		m[string(k)] = append([]byte{}, v...)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decodePairs(b []byte, put func(k, v []byte)) error {
	r := reader{buf: b}
	n, err := r.uint32()
	if err != nil {
		return err
	}
	for range n {
		k, err := r.field()
		if err != nil {
			return err
		}
		v, err := r.field()
		if err != nil {
			return err
		}
		put(k, v)
	}
	return r.done()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func appendLengthPrefixed(buf, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// reader walks a length-prefixed buffer.
type reader struct {
	buf []byte
	off int
}

func (r *reader) uint32() (uint32, error) {
	if len(r.buf)-r.off < 4 {
		return 0, ErrCorruptValue
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) field() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if uint64(len(r.buf)-r.off) < uint64(n) {
		return nil, ErrCorruptValue
	}
	v := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return v, nil
}

func (r *reader) done() error {
	if r.off != len(r.buf) {
		return ErrCorruptValue
	}
	return nil
}
