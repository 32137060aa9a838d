package commands

import (
	"context"
	"fmt"
	"io"

	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
)

// RunSystemStats prints the number of registered tokens and the summed read
// counters.
func RunSystemStats(
	ctx context.Context,
	analyticsUseCase datashareUseCase.AnalyticsUseCase,
	writer io.Writer,
	format string,
) error {
	stats, err := analyticsUseCase.GetSystemStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get system stats: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"total_nfts":     stats.TotalNFTs,
			"total_accesses": stats.TotalAccesses,
		})
	}

	_, _ = fmt.Fprintf(writer, "Total NFTs:     %d\n", stats.TotalNFTs)
	_, _ = fmt.Fprintf(writer, "Total accesses: %d\n", stats.TotalAccesses)
	return nil
}

// RunVerifyIntegrity prints the three existence checks for token id. It
// fails when the token is not registered.
func RunVerifyIntegrity(
	ctx context.Context,
	analyticsUseCase datashareUseCase.AnalyticsUseCase,
	writer io.Writer,
	id uint32,
	format string,
) error {
	report, err := analyticsUseCase.VerifyDataIntegrity(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to verify data integrity: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"nft_id":                id,
			"nft_exists":            report.NFTExists,
			"public_data_exists":    report.PublicDataExists,
			"encrypted_data_exists": report.EncryptedDataExists,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "NFT %d\n", id)
		_, _ = fmt.Fprintf(writer, "  registered:     %t\n", report.NFTExists)
		_, _ = fmt.Fprintf(writer, "  public data:    %t\n", report.PublicDataExists)
		_, _ = fmt.Fprintf(writer, "  encrypted data: %t\n", report.EncryptedDataExists)
	}

	if !report.NFTExists {
		return fmt.Errorf("nft %d is not registered", id)
	}
	return nil
}
