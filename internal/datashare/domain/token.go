package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a registered logical token. Name and description are fixed at
// creation.
type Token struct {
	ID          uint32
	Name        string
	Description string
}

// AccessRequest is a pending request by a system for a permission on a token.
type AccessRequest struct {
	Requester   uuid.UUID  `json:"requester"`
	Permission  Permission `json:"permission"`
	RequestedAt time.Time  `json:"requested_at"`
}

// AccessGrants reports both permissions a system holds on a token.
type AccessGrants struct {
	Read  bool
	Write bool
}

// DataTiers reports which data tiers exist for a token.
type DataTiers struct {
	HasPublicData    bool
	HasEncryptedData bool
}
