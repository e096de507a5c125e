package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	contentUseCase "github.com/allisson/quran-gateway/internal/content/usecase"
)

// RunChapters lists every chapter along with the source that served the list.
// Returns an error when no source could serve it.
func RunChapters(
	ctx context.Context,
	resolver contentUseCase.Resolver,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result := resolver.ListChapters(ctx)
	if !result.Success {
		logger.Warn("chapter list unavailable", slog.String("error", result.Error))
		if format == "json" {
			if err := writeJSON(writer, result); err != nil {
				return err
			}
		}
		return errors.New(result.Error)
	}

	if format == "json" {
		return writeJSON(writer, result)
	}

	fmt.Fprintf(writer, "Source: %s\n", result.Source)
	for _, chapter := range result.Data {
		fmt.Fprintf(writer, "%3d  %-24s %-8s %3d verses  %s\n",
			chapter.ID,
			chapter.ComplexName,
			chapter.RevelationPlace,
			chapter.VerseCount,
			chapter.ArabicName,
		)
	}
	return nil
}
