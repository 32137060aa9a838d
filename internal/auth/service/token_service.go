package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// Prefixes of generated bearer tokens and client secrets.
const (
	TokenPrefix  = "dsat_"
	SecretPrefix = "dscs_"

	credentialEntropyBytes = 32
)

// newCredential returns prefix followed by 32 random bytes, base64url
// encoded without padding.
func newCredential(prefix string) (string, error) {
	b := make([]byte, credentialEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", apperrors.Wrap(err, "failed to read random bytes")
	}
	return prefix + base64.RawURLEncoding.EncodeToString(b), nil
}

type tokenService struct{}

// GenerateToken creates a bearer token and its hash. Only the hash is stored.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	plainToken, err = newCredential(TokenPrefix)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate token")
	}
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the hex encoded SHA-256 of plainToken.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a TokenService.
func NewTokenService() TokenService {
	return &tokenService{}
}
