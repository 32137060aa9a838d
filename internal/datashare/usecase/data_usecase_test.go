package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

func TestDataUseCase_PublicData(t *testing.T) {
	t.Run("Success_RoundTrip", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)

		require.NoError(t, f.data.AddPublicData(ctx, id, "color", "red"))
		require.NoError(t, f.data.AddPublicData(ctx, id, "color", "blue"))
		require.NoError(t, f.data.AddPublicData(ctx, id, "size", "L"))

		value, err := f.data.ReadPublicData(context.Background(), id, "color")
		require.NoError(t, err)
		assert.Equal(t, "blue", value)

		all, err := f.data.GetAllPublicData(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"color": "blue", "size": "L"}, all)

		has, err := f.data.HasPublicData(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("Success_Sentinel", func(t *testing.T) {
		f := newFixture(t)

		value, err := f.data.ReadPublicData(context.Background(), 7, "missing")
		require.NoError(t, err)
		assert.Equal(t, domain.NoDataFound, value)

		count, err := f.analytics.GetDataSharingCount(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), count)
	})

	t.Run("Success_EmptyWhenAbsent", func(t *testing.T) {
		f := newFixture(t)

		all, err := f.data.GetAllPublicData(context.Background(), 3)
		require.NoError(t, err)
		assert.Empty(t, all)

		has, err := f.data.HasPublicData(context.Background(), 3)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("Error_NotAdmin", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		before := f.store.Len()

		err := f.data.AddPublicData(callerCtx(uuid.Must(uuid.NewV7())), id, "k", "v")
		assert.ErrorIs(t, err, domain.ErrAuthorization)
		assert.Equal(t, before, f.store.Len())
	})

	t.Run("Error_TokenNotFound", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)

		err := f.data.AddPublicData(ctx, 0, "k", "v")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestDataUseCase_EncryptedData(t *testing.T) {
	t.Run("Success_GetCountsRead", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		ciphertext := []byte{0x00, 0xff, 0x10}

		require.NoError(t, f.data.AddEncryptedData(ctx, id, "secret", ciphertext))

		value, err := f.data.GetEncryptedData(context.Background(), id, "secret")
		require.NoError(t, err)
		assert.Equal(t, ciphertext, value)

		value, err = f.data.GetEncryptedData(context.Background(), id, "missing")
		require.NoError(t, err)
		assert.Empty(t, value)

		count, err := f.analytics.GetDataSharingCount(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), count)

		has, err := f.data.HasEncryptedData(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("Success_AuditCarriesSizeOnly", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)

		require.NoError(t, f.data.AddEncryptedData(ctx, id, "secret", []byte("ciphertext")))

		logs, err := f.auditLogs.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		last := logs[0]
		assert.Equal(t, domain.ActionAddEncryptedData, last.Action)
		assert.Equal(t, "secret", last.Key)
		assert.NotContains(t, last.Metadata, "value")
	})

	t.Run("Error_CounterOverflow", func(t *testing.T) {
		f := newFixture(t)
		f.setRaw(t, kvstore.NewKey("ACCNT").Uint32(5).Bytes(), kvstore.EncodeUint32(math.MaxUint32))

		_, err := f.data.GetEncryptedData(context.Background(), 5, "k")
		assert.ErrorIs(t, err, domain.ErrCounterOverflow)

		count, err := f.analytics.GetDataSharingCount(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), count)
	})
}

func TestDataUseCase_WriteGrant(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		writer := uuid.Must(uuid.NewV7())
		require.NoError(t, f.access.GrantAccess(ctx, domain.PermissionWrite, writer, id))

		require.NoError(t, f.data.WritePublicData(callerCtx(writer), id, "k", "v", writer))
		require.NoError(t, f.data.WriteEncryptedData(callerCtx(writer), id, "e", []byte{1}, writer))

		all, err := f.data.GetAllPublicData(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"k": "v"}, all)

		value, err := f.data.GetEncryptedData(context.Background(), id, "e")
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, value)
	})

	t.Run("Error_NoGrant", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		writer := uuid.Must(uuid.NewV7())
		require.NoError(t, f.access.GrantAccess(ctx, domain.PermissionRead, writer, id))
		before := f.store.Len()

		err := f.data.WritePublicData(callerCtx(writer), id, "k", "v", writer)
		assert.ErrorIs(t, err, domain.ErrAuthorization)
		assert.Equal(t, before, f.store.Len())
	})

	t.Run("Error_Impersonation", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		writer := uuid.Must(uuid.NewV7())
		require.NoError(t, f.access.GrantAccess(ctx, domain.PermissionWrite, writer, id))

		other := uuid.Must(uuid.NewV7())
		err := f.data.WriteEncryptedData(callerCtx(other), id, "k", []byte{1}, writer)
		assert.ErrorIs(t, err, domain.ErrAuthorization)
	})

	t.Run("Error_Revoked", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.adminCtx(t)
		id := f.createToken(t, ctx)
		writer := uuid.Must(uuid.NewV7())
		require.NoError(t, f.access.GrantAccess(ctx, domain.PermissionWrite, writer, id))
		require.NoError(t, f.access.RevokeAccess(ctx, domain.PermissionWrite, writer, id))

		err := f.data.WritePublicData(callerCtx(writer), id, "k", "v", writer)
		assert.ErrorIs(t, err, domain.ErrAuthorization)
	})
}
