// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/quran-gateway/internal/validation"
)

// VersesRequest contains the parameters for fetching a chapter with a translation.
type VersesRequest struct {
	Chapter       int
	TranslationID string
}

// ParseVersesRequest builds a VersesRequest from the :chapter path parameter and the
// translations query parameter. Only the first of a comma-separated list is used.
func ParseVersesRequest(chapterParam, translations string) *VersesRequest {
	translationID, _, _ := strings.Cut(translations, ",")
	return &VersesRequest{
		Chapter:       atoi(chapterParam),
		TranslationID: strings.TrimSpace(translationID),
	}
}

// Validate checks if the verses request is valid. An empty translation id selects the default.
func (r *VersesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Chapter, customValidation.ChapterNumber),
		validation.Field(&r.TranslationID, customValidation.TranslationID),
	)
}

// AudioRequest contains the parameters for resolving recitation audio.
type AudioRequest struct {
	ReciterID int
	Chapter   int
}

// ParseAudioRequest builds an AudioRequest from the :reciter and :chapter path parameters.
func ParseAudioRequest(reciterParam, chapterParam string) *AudioRequest {
	return &AudioRequest{
		ReciterID: atoi(reciterParam),
		Chapter:   atoi(chapterParam),
	}
}

// Validate checks if the audio request is valid. Unknown reciter ids are accepted;
// the resolver maps them to the default reciter on the public hosts.
func (r *AudioRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ReciterID, validation.Required, validation.Min(1)),
		validation.Field(&r.Chapter, customValidation.ChapterNumber),
	)
}

// atoi returns 0 for anything that is not a decimal integer, which every rule above rejects.
func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
