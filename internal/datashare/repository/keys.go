// Package repository persists the data registry in the shared key-value
// store. Every method runs inside the transaction carried by ctx when there
// is one, and reads of absent entries return the defined default.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

const (
	categoryAdmin          kvstore.Category = "NFTDS"
	categoryTokenCounter   kvstore.Category = "TOKCNT"
	categoryToken          kvstore.Category = "TOKEN"
	categoryPublicData     kvstore.Category = "PUBDATA"
	categoryEncryptedData  kvstore.Category = "ENCDATA"
	categoryReadGrant      kvstore.Category = "READ"
	categoryWriteGrant     kvstore.Category = "WRITE"
	categoryAccessCounter  kvstore.Category = "ACCNT"
	categoryAccessRequests kvstore.Category = "ACCREQ"
)

func adminKey() []byte {
	return kvstore.NewKey(categoryAdmin).Bytes()
}

func tokenCounterKey() []byte {
	return kvstore.NewKey(categoryTokenCounter).Bytes()
}

func tokenKey(id uint32) []byte {
	return kvstore.NewKey(categoryToken).Uint32(id).Bytes()
}

func publicDataKey(id uint32) []byte {
	return kvstore.NewKey(categoryPublicData).Uint32(id).Bytes()
}

func encryptedDataKey(id uint32) []byte {
	return kvstore.NewKey(categoryEncryptedData).Uint32(id).Bytes()
}

func grantKey(permission domain.Permission, identity uuid.UUID, id uint32) []byte {
	category := categoryReadGrant
	if permission == domain.PermissionWrite {
		category = categoryWriteGrant
	}
	return kvstore.NewKey(category).UUID(identity).Uint32(id).Bytes()
}

func accessCounterKey(id uint32) []byte {
	return kvstore.NewKey(categoryAccessCounter).Uint32(id).Bytes()
}

func accessRequestsKey(id uint32) []byte {
	return kvstore.NewKey(categoryAccessRequests).Uint32(id).Bytes()
}

// getOptional returns the value under key, or nil and false when absent.
func getOptional(ctx context.Context, txn kvstore.Txn, key []byte) ([]byte, bool, error) {
	value, err := txn.Get(ctx, key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
