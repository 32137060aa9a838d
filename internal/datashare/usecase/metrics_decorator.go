package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/metrics"
)

const metricsDomain = "datashare"

type registryUseCaseWithMetrics struct {
	next    RegistryUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistryUseCaseWithMetrics wraps a RegistryUseCase with metrics recording.
func NewRegistryUseCaseWithMetrics(useCase RegistryUseCase, m metrics.BusinessMetrics) RegistryUseCase {
	return &registryUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *registryUseCaseWithMetrics) Initialize(ctx context.Context, admin uuid.UUID) error {
	start := time.Now()
	err := r.next.Initialize(ctx, admin)
	metrics.Observe(ctx, r.metrics, metricsDomain, "registry_initialize", start, err)
	return err
}

// RequireAdmin runs on every admin request and is not recorded.
func (r *registryUseCaseWithMetrics) RequireAdmin(ctx context.Context) error {
	return r.next.RequireAdmin(ctx)
}

func (r *registryUseCaseWithMetrics) CreateToken(ctx context.Context, name, description string) (uint32, error) {
	start := time.Now()
	id, err := r.next.CreateToken(ctx, name, description)
	metrics.Observe(ctx, r.metrics, metricsDomain, "token_create", start, err)
	return id, err
}

func (r *registryUseCaseWithMetrics) GetTokenInfo(ctx context.Context, id uint32) (*domain.Token, error) {
	start := time.Now()
	token, err := r.next.GetTokenInfo(ctx, id)
	metrics.Observe(ctx, r.metrics, metricsDomain, "token_get", start, err)
	return token, err
}

func (r *registryUseCaseWithMetrics) GetTotalTokens(ctx context.Context) (uint32, error) {
	start := time.Now()
	total, err := r.next.GetTotalTokens(ctx)
	metrics.Observe(ctx, r.metrics, metricsDomain, "token_total", start, err)
	return total, err
}

type dataUseCaseWithMetrics struct {
	next    DataUseCase
	metrics metrics.BusinessMetrics
}

// NewDataUseCaseWithMetrics wraps a DataUseCase with metrics recording.
func NewDataUseCaseWithMetrics(useCase DataUseCase, m metrics.BusinessMetrics) DataUseCase {
	return &dataUseCaseWithMetrics{next: useCase, metrics: m}
}

func (d *dataUseCaseWithMetrics) AddPublicData(ctx context.Context, id uint32, key, value string) error {
	start := time.Now()
	err := d.next.AddPublicData(ctx, id, key, value)
	metrics.Observe(ctx, d.metrics, metricsDomain, "public_data_add", start, err)
	return err
}

func (d *dataUseCaseWithMetrics) AddEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error {
	start := time.Now()
	err := d.next.AddEncryptedData(ctx, id, key, ciphertext)
	metrics.Observe(ctx, d.metrics, metricsDomain, "encrypted_data_add", start, err)
	return err
}

func (d *dataUseCaseWithMetrics) WritePublicData(
	ctx context.Context,
	id uint32,
	key, value string,
	writer uuid.UUID,
) error {
	start := time.Now()
	err := d.next.WritePublicData(ctx, id, key, value, writer)
	metrics.Observe(ctx, d.metrics, metricsDomain, "public_data_write", start, err)
	return err
}

func (d *dataUseCaseWithMetrics) WriteEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	ciphertext []byte,
	writer uuid.UUID,
) error {
	start := time.Now()
	err := d.next.WriteEncryptedData(ctx, id, key, ciphertext, writer)
	metrics.Observe(ctx, d.metrics, metricsDomain, "encrypted_data_write", start, err)
	return err
}

func (d *dataUseCaseWithMetrics) ReadPublicData(ctx context.Context, id uint32, key string) (string, error) {
	start := time.Now()
	value, err := d.next.ReadPublicData(ctx, id, key)
	metrics.Observe(ctx, d.metrics, metricsDomain, "public_data_read", start, err)
	if err == nil {
		d.metrics.RecordDataRead(ctx, metrics.TierPublic, value != domain.NoDataFound)
	}
	return value, err
}

func (d *dataUseCaseWithMetrics) GetEncryptedData(ctx context.Context, id uint32, key string) ([]byte, error) {
	start := time.Now()
	value, err := d.next.GetEncryptedData(ctx, id, key)
	metrics.Observe(ctx, d.metrics, metricsDomain, "encrypted_data_get", start, err)
	if err == nil {
		d.metrics.RecordDataRead(ctx, metrics.TierEncrypted, len(value) > 0)
	}
	return value, err
}

func (d *dataUseCaseWithMetrics) GetAllPublicData(ctx context.Context, id uint32) (map[string]string, error) {
	start := time.Now()
	data, err := d.next.GetAllPublicData(ctx, id)
	metrics.Observe(ctx, d.metrics, metricsDomain, "public_data_list", start, err)
	return data, err
}

func (d *dataUseCaseWithMetrics) HasPublicData(ctx context.Context, id uint32) (bool, error) {
	start := time.Now()
	has, err := d.next.HasPublicData(ctx, id)
	metrics.Observe(ctx, d.metrics, metricsDomain, "public_data_has", start, err)
	return has, err
}

func (d *dataUseCaseWithMetrics) HasEncryptedData(ctx context.Context, id uint32) (bool, error) {
	start := time.Now()
	has, err := d.next.HasEncryptedData(ctx, id)
	metrics.Observe(ctx, d.metrics, metricsDomain, "encrypted_data_has", start, err)
	return has, err
}

type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *accessUseCaseWithMetrics) GrantAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	start := time.Now()
	err := a.next.GrantAccess(ctx, permission, system, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_grant", start, err)
	return err
}

func (a *accessUseCaseWithMetrics) RevokeAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	start := time.Now()
	err := a.next.RevokeAccess(ctx, permission, system, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_revoke", start, err)
	return err
}

func (a *accessUseCaseWithMetrics) HasAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) (bool, error) {
	start := time.Now()
	granted, err := a.next.HasAccess(ctx, permission, system, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_check", start, err)
	return granted, err
}

func (a *accessUseCaseWithMetrics) GetAccessGrants(
	ctx context.Context,
	system uuid.UUID,
	id uint32,
) (*domain.AccessGrants, error) {
	start := time.Now()
	grants, err := a.next.GetAccessGrants(ctx, system, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_grants", start, err)
	return grants, err
}

func (a *accessUseCaseWithMetrics) ReadEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	requester uuid.UUID,
) ([]byte, error) {
	start := time.Now()
	value, err := a.next.ReadEncryptedData(ctx, id, key, requester)
	metrics.Observe(ctx, a.metrics, metricsDomain, "encrypted_data_read", start, err)
	if err == nil {
		a.metrics.RecordDataRead(ctx, metrics.TierEncrypted, len(value) > 0)
	}
	return value, err
}

func (a *accessUseCaseWithMetrics) RequestAccess(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
) error {
	start := time.Now()
	err := a.next.RequestAccess(ctx, id, permission, requester)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_request", start, err)
	return err
}

func (a *accessUseCaseWithMetrics) ListAccessRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error) {
	start := time.Now()
	requests, err := a.next.ListAccessRequests(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_request_list", start, err)
	return requests, err
}

func (a *accessUseCaseWithMetrics) ResolveAccessRequest(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
	approve bool,
) error {
	start := time.Now()
	err := a.next.ResolveAccessRequest(ctx, id, permission, requester, approve)
	metrics.Observe(ctx, a.metrics, metricsDomain, "access_request_resolve", start, err)
	return err
}

type analyticsUseCaseWithMetrics struct {
	next    AnalyticsUseCase
	metrics metrics.BusinessMetrics
}

// NewAnalyticsUseCaseWithMetrics wraps an AnalyticsUseCase with metrics recording.
func NewAnalyticsUseCaseWithMetrics(useCase AnalyticsUseCase, m metrics.BusinessMetrics) AnalyticsUseCase {
	return &analyticsUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *analyticsUseCaseWithMetrics) GetDataSharingCount(ctx context.Context, id uint32) (uint32, error) {
	start := time.Now()
	count, err := a.next.GetDataSharingCount(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "analytics_count", start, err)
	return count, err
}

func (a *analyticsUseCaseWithMetrics) GetTotalAccesses(ctx context.Context) (uint64, error) {
	start := time.Now()
	total, err := a.next.GetTotalAccesses(ctx)
	metrics.Observe(ctx, a.metrics, metricsDomain, "analytics_total", start, err)
	return total, err
}

func (a *analyticsUseCaseWithMetrics) GetAccessStats(ctx context.Context, id uint32) (*domain.AccessStats, error) {
	start := time.Now()
	stats, err := a.next.GetAccessStats(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "analytics_access_stats", start, err)
	return stats, err
}

func (a *analyticsUseCaseWithMetrics) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	start := time.Now()
	stats, err := a.next.GetSystemStats(ctx)
	metrics.Observe(ctx, a.metrics, metricsDomain, "analytics_system_stats", start, err)
	return stats, err
}

func (a *analyticsUseCaseWithMetrics) VerifyDataIntegrity(
	ctx context.Context,
	id uint32,
) (*domain.IntegrityReport, error) {
	start := time.Now()
	report, err := a.next.VerifyDataIntegrity(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "integrity_verify", start, err)
	return report, err
}
