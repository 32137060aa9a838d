package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/metrics"
)

const metricsDomain = "auth"

type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	start := time.Now()
	output, err := c.next.Create(ctx, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_create", start, err)
	return output, err
}

func (c *clientUseCaseWithMetrics) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, clientID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_get", start, err)
	return client, err
}

func (c *clientUseCaseWithMetrics) Delete(ctx context.Context, clientID uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, clientID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_delete", start, err)
	return err
}

func (c *clientUseCaseWithMetrics) Unlock(ctx context.Context, clientID uuid.UUID) error {
	start := time.Now()
	err := c.next.Unlock(ctx, clientID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_unlock", start, err)
	return err
}

type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{next: useCase, metrics: m}
}

func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_issue", start, err)
	return output, err
}

func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	start := time.Now()
	client, err := t.next.Authenticate(ctx, tokenHash)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_authenticate", start, err)
	return client, err
}

func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, tokenHash string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, tokenHash)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_revoke", start, err)
	return err
}

type auditLogUseCaseWithMetrics struct {
	next    AuditLogUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditLogUseCaseWithMetrics wraps an AuditLogUseCase with metrics recording.
func NewAuditLogUseCaseWithMetrics(useCase AuditLogUseCase, m metrics.BusinessMetrics) AuditLogUseCase {
	return &auditLogUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *auditLogUseCaseWithMetrics) Record(ctx context.Context, entry authDomain.AuditEntry) error {
	start := time.Now()
	err := a.next.Record(ctx, entry)
	metrics.Observe(ctx, a.metrics, metricsDomain, "audit_log_record", start, err)
	return err
}

func (a *auditLogUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error) {
	start := time.Now()
	logs, err := a.next.List(ctx, offset, limit)
	metrics.Observe(ctx, a.metrics, metricsDomain, "audit_log_list", start, err)
	return logs, err
}

func (a *auditLogUseCaseWithMetrics) Verify(ctx context.Context) (*authDomain.VerificationReport, error) {
	start := time.Now()
	report, err := a.next.Verify(ctx)
	metrics.Observe(ctx, a.metrics, metricsDomain, "audit_log_verify", start, err)
	return report, err
}
