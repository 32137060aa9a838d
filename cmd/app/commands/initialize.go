package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
)

// RunInitialize sets the registry administrator to an existing client ID.
// It succeeds once per store.
func RunInitialize(
	ctx context.Context,
	registryUseCase datashareUseCase.RegistryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	adminID string,
) error {
	admin, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin client ID: %w", err)
	}

	if err := registryUseCase.Initialize(ctx, admin); err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}

	logger.Info("registry initialized", slog.String("admin", admin.String()))
	_, _ = fmt.Fprintf(writer, "Registry initialized with admin %s\n", admin)
	return nil
}
