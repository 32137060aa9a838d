package domain

import (
	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
)

var (
	// ErrAuthorization is returned when the caller cannot prove the identity an
	// operation requires.
	ErrAuthorization = authDomain.ErrAuthorization

	// ErrNotInitialized is returned by admin-gated operations before an admin is set.
	ErrNotInitialized = apperrors.Wrap(apperrors.ErrForbidden, "registry not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = apperrors.Wrap(apperrors.ErrConflict, "registry already initialized")

	// ErrInvalidAdmin is returned when Initialize receives the nil identity.
	ErrInvalidAdmin = apperrors.Wrap(apperrors.ErrInvalidInput, "admin identity must not be nil")

	// ErrTokenNotFound is returned by writes and grants on an unassigned token id.
	ErrTokenNotFound = apperrors.Wrap(apperrors.ErrNotFound, "token not found")

	// ErrCounterOverflow is returned when a 32-bit counter would wrap.
	ErrCounterOverflow = apperrors.Wrap(apperrors.ErrConflict, "counter overflow")

	// ErrInvalidPermission is returned for an unknown permission kind.
	ErrInvalidPermission = apperrors.Wrap(apperrors.ErrInvalidInput, "permission must be read or write")

	// ErrAccessRequestNotFound is returned when resolving a request that is not pending.
	ErrAccessRequestNotFound = apperrors.Wrap(apperrors.ErrNotFound, "access request not found")

	// ErrAccessRequestExists is returned when the same request is already pending.
	ErrAccessRequestExists = apperrors.Wrap(apperrors.ErrConflict, "access request already pending")
)
