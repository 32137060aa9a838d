package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/kvstore/memory"
)

func appendN(t *testing.T, repo *KVAuditLogRepository, n int) {
	t.Helper()
	for range n {
		log := &authDomain.AuditLog{
			ID:        uuid.Must(uuid.NewV7()),
			Caller:    authDomain.SystemCaller,
			Action:    "create_token",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Append(context.Background(), log, func(*authDomain.AuditLog) error { return nil }))
	}
}

func TestKVAuditLogRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewKVAuditLogRepository(memory.New())

	appendN(t, repo, 3)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	for seq := range uint64(3) {
		log, err := repo.Get(ctx, seq)
		require.NoError(t, err)
		assert.Equal(t, seq, log.Sequence)
	}

	_, err = repo.Get(ctx, 3)
	assert.ErrorIs(t, err, authDomain.ErrAuditLogNotFound)
}

func TestKVAuditLogRepository_AppendPrepareSeesSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewKVAuditLogRepository(memory.New())
	appendN(t, repo, 2)

	log := &authDomain.AuditLog{ID: uuid.Must(uuid.NewV7())}
	err := repo.Append(ctx, log, func(l *authDomain.AuditLog) error {
		assert.Equal(t, uint64(2), l.Sequence)
		l.Signature = []byte("sig")
		return nil
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("sig"), got.Signature)
}

func TestKVAuditLogRepository_AppendPrepareFailureWritesNothing(t *testing.T) {
	store := memory.New()
	tm := kvstore.NewTxManager(store)
	repo := NewKVAuditLogRepository(store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.WithTx(ctx, func(ctx context.Context) error {
		return repo.Append(ctx, &authDomain.AuditLog{}, func(*authDomain.AuditLog) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestKVAuditLogRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewKVAuditLogRepository(memory.New())
	appendN(t, repo, 5)

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []uint64
	}{
		{name: "First page", offset: 0, limit: 2, want: []uint64{4, 3}},
		{name: "Second page", offset: 2, limit: 2, want: []uint64{2, 1}},
		{name: "Last partial page", offset: 4, limit: 2, want: []uint64{0}},
		{name: "Past the end", offset: 5, limit: 2, want: []uint64{}},
		{name: "Everything", offset: 0, limit: 100, want: []uint64{4, 3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repo.List(ctx, tt.offset, tt.limit)
			require.NoError(t, err)

			got := make([]uint64, 0, len(logs))
			for _, l := range logs {
				got = append(got, l.Sequence)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
