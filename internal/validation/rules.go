// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	apperrors "github.com/allisson/quran-gateway/internal/errors"
)

// MaxChapter is the number of chapters in the mushaf.
const MaxChapter = 114

var (
	// translationIDRegex accepts numeric resource ids and dotted edition names (e.g. en.sahih).
	translationIDRegex = regexp.MustCompile(`^([1-9][0-9]{0,5}|[a-z]{2,3}\.[a-z0-9-]+)$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// TranslationID validates a translation resource id or fallback edition name.
var TranslationID = validation.NewStringRuleWithError(
	translationIDRegex.MatchString,
	validation.NewError("validation_translation_id", "must be a numeric id or an edition name"),
)

// AbsoluteURL validates that a string is an absolute http or https URL with a host.
var AbsoluteURL = validation.NewStringRuleWithError(
	contentDomain.IsAbsoluteURL,
	validation.NewError("validation_absolute_url", "must be an absolute http(s) URL"),
)

// ChapterNumber validates a chapter number in the range 1..114.
var ChapterNumber = validation.By(func(value interface{}) error {
	n, ok := value.(int)
	if !ok {
		return validation.NewError("validation_chapter_type", "must be an integer")
	}
	if n < 1 || n > MaxChapter {
		return validation.NewError("validation_chapter_range", "must be between 1 and 114")
	}
	return nil
})
