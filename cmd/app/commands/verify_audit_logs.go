package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
)

// RunVerifyAuditLogs recomputes the HMAC signature of every audit log entry
// and fails when any entry does not match.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("verifying audit logs")

	report, err := auditLogUseCase.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"total":       report.Total,
			"valid":       report.Valid,
			"invalid":     report.Invalid,
			"invalid_ids": report.InvalidIDs,
			"passed":      report.Passed(),
		}); err != nil {
			return err
		}
	} else {
		outputVerifyText(writer, report)
	}

	logger.Info("verification completed",
		slog.Uint64("total", report.Total),
		slog.Uint64("valid", report.Valid),
		slog.Uint64("invalid", report.Invalid),
	)

	if !report.Passed() {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.Invalid)
	}
	return nil
}

func outputVerifyText(writer io.Writer, report *authDomain.VerificationReport) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer, "Total:    %d\n", report.Total)
	_, _ = fmt.Fprintf(writer, "Valid:    %d\n", report.Valid)
	_, _ = fmt.Fprintf(writer, "Invalid:  %d\n\n", report.Invalid)

	switch {
	case !report.Passed():
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) failed integrity check!\n\n", report.Invalid)
		_, _ = fmt.Fprintf(writer, "Invalid Log IDs:\n")
		for _, id := range report.InvalidIDs {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.Total == 0:
		_, _ = fmt.Fprintf(writer, "Status: No logs recorded\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}
