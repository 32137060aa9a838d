package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
)

func TestAuthorizer_RequireAuth(t *testing.T) {
	authorizer := NewAuthorizer()
	identity := uuid.Must(uuid.NewV7())
	other := uuid.Must(uuid.NewV7())

	t.Run("No caller", func(t *testing.T) {
		err := authorizer.RequireAuth(context.Background(), identity)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Nil caller", func(t *testing.T) {
		err := authorizer.RequireAuth(WithCaller(context.Background(), uuid.Nil), identity)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Different caller", func(t *testing.T) {
		err := authorizer.RequireAuth(WithCaller(context.Background(), other), identity)
		assert.ErrorIs(t, err, authDomain.ErrAuthorization)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Matching caller", func(t *testing.T) {
		err := authorizer.RequireAuth(WithCaller(context.Background(), identity), identity)
		assert.NoError(t, err)
	})
}

func TestCallerName(t *testing.T) {
	assert.Equal(t, authDomain.SystemCaller, CallerName(context.Background()))

	id := uuid.Must(uuid.NewV7())
	assert.Equal(t, id.String(), CallerName(WithCaller(context.Background(), id)))
}
