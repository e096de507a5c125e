package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	footnotePattern = regexp.MustCompile(`<sup foot_note=\d+>\d+</sup>`)
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// CleanTranslationText removes footnote markers, then any remaining markup, then trims.
func CleanTranslationText(text string) string {
	text = footnotePattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// IsAbsoluteURL reports whether raw parses as an http or https URL with a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Absolutize qualifies a relative URL with base. Protocol-relative URLs get https.
// Absolute URLs and empty strings are returned unchanged.
func Absolutize(base, raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "", IsAbsoluteURL(raw):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(raw, "/")
}

// VerseKey formats the canonical "chapter:verse" identifier.
func VerseKey(chapter, verse int) string {
	return fmt.Sprintf("%d:%d", chapter, verse)
}

// ParseVerseKey splits a "chapter:verse" identifier.
func ParseVerseKey(key string) (chapter, verse int, ok bool) {
	if _, err := fmt.Sscanf(key, "%d:%d", &chapter, &verse); err != nil {
		return 0, 0, false
	}
	return chapter, verse, chapter > 0 && verse > 0
}

// Pad3 zero-pads n to three digits, as used in audio file names.
func Pad3(n int) string {
	return fmt.Sprintf("%03d", n)
}

// NormalizeRevelationPlace maps upstream spellings onto makkah or madinah.
func NormalizeRevelationPlace(place string) string {
	switch strings.ToLower(strings.TrimSpace(place)) {
	case "makkah", "meccan", "mecca", "makki":
		return RevelationMakkah
	case "madinah", "medinan", "medina", "madani":
		return RevelationMadinah
	}
	return strings.ToLower(strings.TrimSpace(place))
}
