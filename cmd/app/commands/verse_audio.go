package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	contentDTO "github.com/allisson/quran-gateway/internal/content/http/dto"
	contentUseCase "github.com/allisson/quran-gateway/internal/content/usecase"
	customValidation "github.com/allisson/quran-gateway/internal/validation"
)

// RunVerseAudio prints the per-verse audio URLs of a chapter for a reciter.
func RunVerseAudio(
	ctx context.Context,
	resolver contentUseCase.Resolver,
	logger *slog.Logger,
	writer io.Writer,
	reciterID int,
	chapter int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	request := &contentDTO.AudioRequest{ReciterID: reciterID, Chapter: chapter}
	if err := request.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	result := resolver.GetVerseAudio(ctx, reciterID, chapter)
	if !result.Success {
		logger.Warn("verse audio unavailable",
			slog.Int("reciter_id", reciterID),
			slog.Int("chapter", chapter),
			slog.String("error", result.Error),
		)
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
	for _, file := range result.Data {
		fmt.Fprintf(writer, "%-8s %s\n", file.VerseKey, file.URL)
	}
	return nil
}
