package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
)

// RunCreateClient registers a client and prints its ID and one-time secret.
// The ID is the identity used for grants, access requests and, through the
// initialize command, the registry administrator.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	isActive bool,
	format string,
) error {
	logger.Info("creating new client", slog.String("name", name))

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]string{
			"client_id": output.ID.String(),
			"secret":    output.PlainSecret,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "Client created successfully!")
		_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ID)
		_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
		_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
	}

	logger.Info("client created", slog.String("client_id", output.ID.String()))
	return nil
}
