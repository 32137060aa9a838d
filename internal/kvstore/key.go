package kvstore

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Category namespaces a family of keys. Every key starts with its category so
// two categories can never produce the same key.
type Category string

// Key builds an opaque storage key from a category and a sequence of typed
// components.
//
// Layout: [len(category)] [category] [component...]. Numeric and UUID
// components are fixed width; string components carry a 4-byte length prefix.
// Together this makes the encoding injective: distinct (category, components)
// tuples always yield distinct byte strings.
type Key struct {
	buf []byte
}

// NewKey starts a key in the given category. Categories longer than 255 bytes
// are a programming error.
func NewKey(category Category) *Key {
	if len(category) == 0 || len(category) > 0xFF {
		panic("kvstore: category length must be between 1 and 255 bytes")
	}
	buf := make([]byte, 0, 1+len(category)+24)
	buf = append(buf, byte(len(category)))
	buf = append(buf, category...)
	return &Key{buf: buf}
}

// Uint32 appends a big-endian uint32 component.
func (k *Key) Uint32(v uint32) *Key {
	k.buf = append(k.buf, 'u')
	k.buf = binary.BigEndian.AppendUint32(k.buf, v)
	return k
}

// Uint64 appends a big-endian uint64 component.
func (k *Key) Uint64(v uint64) *Key {
	k.buf = append(k.buf, 'U')
	k.buf = binary.BigEndian.AppendUint64(k.buf, v)
	return k
}

// UUID appends a 16-byte identity component.
func (k *Key) UUID(id uuid.UUID) *Key {
	k.buf = append(k.buf, 'i')
	k.buf = append(k.buf, id[:]...)
	return k
}

// String appends a length-prefixed string component.
func (k *Key) String(s string) *Key {
	k.buf = append(k.buf, 's')
	k.buf = binary.BigEndian.AppendUint32(k.buf, uint32(len(s)))
	k.buf = append(k.buf, s...)
	return k
}

// Bytes returns the encoded key. The returned slice must not be modified.
func (k *Key) Bytes() []byte {
	return k.buf
}
