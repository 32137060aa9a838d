// Package kvstoretest holds behavioural tests shared by every kvstore backend.
package kvstoretest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/datashare/internal/kvstore"
)

// Run exercises store against the kvstore.Store contract. The store must be
// empty when Run is called.
func Run(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		err := store.Update(ctx, func(txn kvstore.Txn) error {
			_, err := txn.Get(ctx, []byte("missing"))
			assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

			ok, err := txn.Has(ctx, []byte("missing"))
			require.NoError(t, err)
			assert.False(t, ok)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("set then get", func(t *testing.T) {
		key := kvstore.NewKey("TEST").Uint32(1).Bytes()
		value := []byte{0xff, 0x00, 0xfe}

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			return txn.Set(ctx, key, value)
		}))

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			got, err := txn.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, value, got)

			ok, err := txn.Has(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
			return nil
		}))
	})

	t.Run("read your own writes", func(t *testing.T) {
		key := kvstore.NewKey("TEST").Uint32(2).Bytes()

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			require.NoError(t, txn.Set(ctx, key, []byte("a")))
			require.NoError(t, txn.Set(ctx, key, []byte("b")))

			got, err := txn.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []byte("b"), got)
			return nil
		}))
	})

	t.Run("empty value is present", func(t *testing.T) {
		key := kvstore.NewKey("TEST").Uint32(3).Bytes()

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			return txn.Set(ctx, key, []byte{})
		}))
		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			got, err := txn.Get(ctx, key)
			require.NoError(t, err)
			assert.Empty(t, got)
			return nil
		}))
	})

	t.Run("failed update leaves no trace", func(t *testing.T) {
		key := kvstore.NewKey("TEST").Uint32(4).Bytes()
		boom := errors.New("boom")

		err := store.Update(ctx, func(txn kvstore.Txn) error {
			require.NoError(t, txn.Set(ctx, key, []byte("x")))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			ok, err := txn.Has(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok)
			return nil
		}))
	})

	t.Run("returned values are not aliased", func(t *testing.T) {
		key := kvstore.NewKey("TEST").Uint32(5).Bytes()
		value := []byte("original")

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			return txn.Set(ctx, key, value)
		}))
		value[0] = 'X'

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			got, err := txn.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []byte("original"), got)
			got[0] = 'Y'
			return nil
		}))

		require.NoError(t, store.Update(ctx, func(txn kvstore.Txn) error {
			got, err := txn.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []byte("original"), got)
			return nil
		}))
	})
}
