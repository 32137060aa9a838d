// Package domain defines the data registry model: tokens, the public and
// encrypted data tiers, access grants, permission requests and analytics.
package domain

import (
	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// NoDataFound is returned by public reads of a key that holds no value.
const NoDataFound = "No data found"

// Permission is an independent access right a system holds on a token.
type Permission string

const (
	// PermissionRead gates reads of the encrypted tier.
	PermissionRead Permission = "read"
	// PermissionWrite gates writes to either tier by non-admin systems.
	PermissionWrite Permission = "write"
)

// Permissions lists every permission kind.
var Permissions = []Permission{PermissionRead, PermissionWrite}

// ParsePermission converts s into a Permission.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case PermissionRead, PermissionWrite:
		return p, nil
	default:
		return "", ErrInvalidPermission
	}
}

// Audited registry actions.
const (
	ActionInitialize           authDomain.Action = "initialize"
	ActionCreateToken          authDomain.Action = "create_token"
	ActionAddPublicData        authDomain.Action = "add_public_data"
	ActionAddEncryptedData     authDomain.Action = "add_encrypted_data"
	ActionWritePublicData      authDomain.Action = "write_public_data"
	ActionWriteEncryptedData   authDomain.Action = "write_encrypted_data"
	ActionReadEncryptedData    authDomain.Action = "read_encrypted_data"
	ActionGrantAccess          authDomain.Action = "grant_access"
	ActionRevokeAccess         authDomain.Action = "revoke_access"
	ActionRequestAccess        authDomain.Action = "request_access"
	ActionResolveAccessRequest authDomain.Action = "resolve_access_request"
)
