package dto

import (
	"time"

	"github.com/allisson/datashare/internal/datashare/domain"
)

// CreateTokenResponse contains the id assigned to a new token.
type CreateTokenResponse struct {
	ID uint32 `json:"id"`
}

// TokenResponse represents a token record. Name and description are empty
// when the id was never assigned.
type TokenResponse struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *domain.Token) TokenResponse {
	return TokenResponse{
		ID:          token.ID,
		Name:        token.Name,
		Description: token.Description,
	}
}

// TotalTokensResponse contains the number of registered tokens.
type TotalTokensResponse struct {
	TotalTokens uint32 `json:"total_tokens"`
}

// PublicDataResponse contains one public value.
type PublicDataResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PublicDataMapResponse contains every public value of a token.
type PublicDataMapResponse struct {
	Data map[string]string `json:"data"`
}

// EncryptedDataResponse contains one ciphertext, base64 encoded on the wire.
type EncryptedDataResponse struct {
	Key        string `json:"key"`
	Ciphertext []byte `json:"ciphertext"`
}

// TiersResponse reports which data tiers exist for a token.
type TiersResponse struct {
	HasPublicData    bool `json:"has_public_data"`
	HasEncryptedData bool `json:"has_encrypted_data"`
}

// MapTiersToResponse converts a domain tier report to an API response.
func MapTiersToResponse(tiers *domain.DataTiers) TiersResponse {
	return TiersResponse{
		HasPublicData:    tiers.HasPublicData,
		HasEncryptedData: tiers.HasEncryptedData,
	}
}

// GrantsResponse reports the permission flags of one identity on a token.
type GrantsResponse struct {
	Identity string `json:"identity"`
	Read     bool   `json:"read"`
	Write    bool   `json:"write"`
}

// AccessRequestResponse represents a pending access request.
type AccessRequestResponse struct {
	Requester   string    `json:"requester"`
	Permission  string    `json:"permission"`
	RequestedAt time.Time `json:"requested_at"`
}

// ListAccessRequestsResponse contains the pending requests of a token.
type ListAccessRequestsResponse struct {
	Data []AccessRequestResponse `json:"data"`
}

// MapAccessRequestsToResponse converts domain requests to an API response.
func MapAccessRequestsToResponse(requests []domain.AccessRequest) ListAccessRequestsResponse {
	data := make([]AccessRequestResponse, 0, len(requests))
	for _, r := range requests {
		data = append(data, AccessRequestResponse{
			Requester:   r.Requester.String(),
			Permission:  string(r.Permission),
			RequestedAt: r.RequestedAt,
		})
	}
	return ListAccessRequestsResponse{Data: data}
}

// AccessStatsResponse bundles the read counter of one token.
type AccessStatsResponse struct {
	TotalAccesses uint32 `json:"total_accesses"`
	NFTID         uint32 `json:"nft_id"`
}

// SystemStatsResponse bundles registry-wide figures.
type SystemStatsResponse struct {
	TotalNFTs     uint32 `json:"total_nfts"`
	TotalAccesses uint64 `json:"total_accesses"`
}

// TotalAccessesResponse contains the summed read counters.
type TotalAccessesResponse struct {
	TotalAccesses uint64 `json:"total_accesses"`
}

// DataSharingCountResponse contains the read counter of one token.
type DataSharingCountResponse struct {
	Count uint32 `json:"count"`
}

// IntegrityResponse holds the three existence checks of a token.
type IntegrityResponse struct {
	NFTExists           bool `json:"nft_exists"`
	PublicDataExists    bool `json:"public_data_exists"`
	EncryptedDataExists bool `json:"encrypted_data_exists"`
}

// MapIntegrityToResponse converts a domain integrity report to an API response.
func MapIntegrityToResponse(report *domain.IntegrityReport) IntegrityResponse {
	return IntegrityResponse{
		NFTExists:           report.NFTExists,
		PublicDataExists:    report.PublicDataExists,
		EncryptedDataExists: report.EncryptedDataExists,
	}
}
