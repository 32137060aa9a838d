package usecase

import (
	"context"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

type analyticsUseCase struct {
	txManager     kvstore.TxManager
	registryRepo  RegistryRepository
	dataRepo      DataRepository
	analyticsRepo AnalyticsRepository
}

// GetDataSharingCount returns the read counter of token id.
func (a *analyticsUseCase) GetDataSharingCount(ctx context.Context, id uint32) (uint32, error) {
	var count uint32
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		count, err = a.analyticsRepo.GetAccessCount(ctx, id)
		return err
	})
	return count, err
}

// GetTotalAccesses sums the read counters of tokens 0..TokenCounter-1. The
// sum is recomputed on every call.
func (a *analyticsUseCase) GetTotalAccesses(ctx context.Context) (uint64, error) {
	var total uint64
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		total, err = a.totalAccesses(ctx)
		return err
	})
	return total, err
}

func (a *analyticsUseCase) totalAccesses(ctx context.Context) (uint64, error) {
	counter, err := a.registryRepo.GetTokenCounter(ctx)
	if err != nil {
		return 0, err
	}
	return a.analyticsRepo.SumAccessCounts(ctx, counter)
}

// GetAccessStats bundles the read counter of token id.
func (a *analyticsUseCase) GetAccessStats(ctx context.Context, id uint32) (*domain.AccessStats, error) {
	count, err := a.GetDataSharingCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.AccessStats{TotalAccesses: count, NFTID: id}, nil
}

// GetSystemStats bundles the token count and the summed read counters.
func (a *analyticsUseCase) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	stats := &domain.SystemStats{}
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if stats.TotalNFTs, err = a.registryRepo.GetTokenCounter(ctx); err != nil {
			return err
		}
		stats.TotalAccesses, err = a.analyticsRepo.SumAccessCounts(ctx, stats.TotalNFTs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// VerifyDataIntegrity runs three independent existence checks on token id.
func (a *analyticsUseCase) VerifyDataIntegrity(ctx context.Context, id uint32) (*domain.IntegrityReport, error) {
	report := &domain.IntegrityReport{}
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if report.NFTExists, err = a.registryRepo.TokenExists(ctx, id); err != nil {
			return err
		}
		if report.PublicDataExists, err = a.dataRepo.HasPublicData(ctx, id); err != nil {
			return err
		}
		report.EncryptedDataExists, err = a.dataRepo.HasEncryptedData(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase with the provided dependencies.
func NewAnalyticsUseCase(
	txManager kvstore.TxManager,
	registryRepo RegistryRepository,
	dataRepo DataRepository,
	analyticsRepo AnalyticsRepository,
) AnalyticsUseCase {
	return &analyticsUseCase{
		txManager:     txManager,
		registryRepo:  registryRepo,
		dataRepo:      dataRepo,
		analyticsRepo: analyticsRepo,
	}
}
