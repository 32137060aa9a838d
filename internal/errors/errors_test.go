package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lockoutError struct {
	Attempts int
}

func (e lockoutError) Error() string { return "too many attempts" }

func TestWrap(t *testing.T) {
	tokenNotFound := Wrap(ErrNotFound, "token not found")

	assert.EqualError(t, tokenNotFound, "token not found: not found")
	assert.True(t, Is(tokenNotFound, ErrNotFound))
	assert.False(t, Is(tokenNotFound, ErrConflict))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrForbidden, "client %s may not grant token %d", "c1", 7)

	assert.EqualError(t, err, "client c1 may not grant token 7: forbidden")
	assert.True(t, Is(err, ErrForbidden))
	assert.Nil(t, Wrapf(nil, "token %d", 1))
}

func TestIs_ThroughLayers(t *testing.T) {
	domainErr := Wrap(ErrConflict, "registry already initialized")
	useCaseErr := Wrapf(domainErr, "initialize admin %s", "a1")

	assert.True(t, Is(useCaseErr, domainErr))
	assert.True(t, Is(useCaseErr, ErrConflict))
}

func TestAs(t *testing.T) {
	err := Wrap(lockoutError{Attempts: 10}, "issue token")

	var target lockoutError
	assert.True(t, As(err, &target))
	assert.Equal(t, 10, target.Attempts)

	var other *lockoutError
	assert.False(t, As(errors.New("plain"), &other))
}

func TestJoin(t *testing.T) {
	joined := Join(ErrNotFound, nil, ErrLocked)

	assert.True(t, Is(joined, ErrNotFound))
	assert.True(t, Is(joined, ErrLocked))
	assert.Nil(t, Join(nil, nil))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrLocked}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, Is(a, b), "%v vs %v", a, b)
		}
	}
	assert.EqualError(t, New("custom"), "custom")
}
