package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON loads the JSON record stored under key into v.
func GetJSON(ctx context.Context, txn Txn, key []byte, v any) error {
	raw, err := txn.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	return nil
}

// SetJSON stores v as a JSON record under key.
func SetJSON(ctx context.Context, txn Txn, key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return txn.Set(ctx, key, raw)
}
