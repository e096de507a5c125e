package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	contentUseCase "github.com/allisson/quran-gateway/internal/content/usecase"
)

// RunStatus reports whether the primary content API accepts the configured credentials.
func RunStatus(
	ctx context.Context,
	resolver contentUseCase.Resolver,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	status := resolver.Status(ctx)
	logger.Debug("status checked",
		slog.Bool("authenticated", status.Authenticated),
		slog.String("source", string(status.Source)),
	)

	if format == "json" {
		return writeJSON(writer, status)
	}

	fmt.Fprintf(writer, "Authenticated:   %t\n", status.Authenticated)
	fmt.Fprintf(writer, "Source:          %s\n", status.Source)
	fmt.Fprintf(writer, "Has credentials: %t\n", status.HasCredentials)
	fmt.Fprintf(writer, "Message:         %s\n", status.Message)
	return nil
}
