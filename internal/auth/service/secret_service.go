package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// secretService implements SecretService using Argon2id.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateSecret creates a client secret and its Argon2id hash.
func (s *secretService) GenerateSecret() (plainSecret string, hashedSecret string, err error) {
	plainSecret, err = newCredential(SecretPrefix)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate secret")
	}

	hashedSecret, err = s.HashSecret(plainSecret)
	if err != nil {
		return "", "", err
	}
	return plainSecret, hashedSecret, nil
}

// HashSecret hashes a plain text secret using Argon2id.
func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// CompareSecret verifies plainSecret against its Argon2id hash. Malformed
// hashes never match.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// NewSecretService creates a SecretService using the moderate Argon2id policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		panic(err)
	}
	return &secretService{hasher: hasher}
}
