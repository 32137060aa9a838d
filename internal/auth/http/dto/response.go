package dto

import (
	"time"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// CreateClientResponse contains the result of creating a new client.
// The secret is only returned once.
type CreateClientResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"` //nolint:gosec // returned once on creation
}

// ClientResponse represents a client in API responses (excludes secret).
type ClientResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"is_active"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MapClientToResponse converts a domain client to an API response.
func MapClientToResponse(client *authDomain.Client) ClientResponse {
	return ClientResponse{
		ID:             client.ID.String(),
		Name:           client.Name,
		IsActive:       client.IsActive,
		FailedAttempts: client.FailedAttempts,
		LockedUntil:    client.LockedUntil,
		CreatedAt:      client.CreatedAt,
	}
}

// IssueTokenResponse contains the result of issuing a token.
// The token is only returned once.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	Sequence  uint64         `json:"sequence"`
	Caller    string         `json:"caller"`
	Action    string         `json:"action"`
	TokenID   *uint32        `json:"token_id,omitempty"`
	Key       string         `json:"key,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// MapAuditLogToResponse converts a domain audit log to an API response.
func MapAuditLogToResponse(auditLog *authDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        auditLog.ID.String(),
		Sequence:  auditLog.Sequence,
		Caller:    auditLog.Caller,
		Action:    string(auditLog.Action),
		TokenID:   auditLog.TokenID,
		Key:       auditLog.Key,
		Metadata:  auditLog.Metadata,
		CreatedAt: auditLog.CreatedAt,
	}
}

// ListAuditLogsResponse represents a paginated list of audit logs in API responses.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts a slice of domain audit logs to a list API response.
func MapAuditLogsToListResponse(auditLogs []*authDomain.AuditLog) ListAuditLogsResponse {
	auditLogResponses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		auditLogResponses = append(auditLogResponses, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{
		Data: auditLogResponses,
	}
}

// VerificationResponse reports the outcome of an audit log verification.
type VerificationResponse struct {
	Total      uint64   `json:"total"`
	Valid      uint64   `json:"valid"`
	Invalid    uint64   `json:"invalid"`
	InvalidIDs []string `json:"invalid_ids"`
	Passed     bool     `json:"passed"`
}

// MapVerificationReportToResponse converts a verification report to an API response.
func MapVerificationReportToResponse(report *authDomain.VerificationReport) VerificationResponse {
	invalidIDs := make([]string, 0, len(report.InvalidIDs))
	for _, id := range report.InvalidIDs {
		invalidIDs = append(invalidIDs, id.String())
	}
	return VerificationResponse{
		Total:      report.Total,
		Valid:      report.Valid,
		Invalid:    report.Invalid,
		InvalidIDs: invalidIDs,
		Passed:     report.Passed(),
	}
}
