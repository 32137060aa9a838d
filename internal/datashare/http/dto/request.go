// Package dto provides data transfer objects for the registry HTTP API.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/datashare/internal/validation"
)

const (
	maxNameBytes        = 255
	maxDescriptionBytes = 4096
	maxValueBytes       = 64 * 1024
)

// CreateTokenRequest contains the parameters for registering a token.
type CreateTokenRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create token request is valid.
func (r *CreateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			customValidation.MaxBytes(maxNameBytes),
		),
		validation.Field(&r.Description,
			customValidation.MaxBytes(maxDescriptionBytes),
		),
	)
}

// PutPublicDataRequest carries a public value to upsert.
type PutPublicDataRequest struct {
	Value string `json:"value"`
}

// Validate checks if the put public data request is valid.
func (r *PutPublicDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, customValidation.MaxBytes(maxValueBytes)),
	)
}

// PutEncryptedDataRequest carries a base64 encoded ciphertext to upsert. The
// service stores the decoded bytes as-is.
type PutEncryptedDataRequest struct {
	Ciphertext string `json:"ciphertext"`
}

// Validate checks if the put encrypted data request is valid.
func (r *PutEncryptedDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			customValidation.Base64,
			customValidation.MaxBytes(base64.StdEncoding.EncodedLen(maxValueBytes)),
		),
	)
}

// Decode returns the ciphertext bytes. Call Validate first.
func (r *PutEncryptedDataRequest) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Ciphertext)
}

// ResolveAccessRequestRequest approves or denies a pending access request.
type ResolveAccessRequestRequest struct {
	Approve *bool `json:"approve"`
}

// Validate checks if the resolve request is valid.
func (r *ResolveAccessRequestRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Approve, validation.NotNil),
	)
}
