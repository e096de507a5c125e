package domain

// Verse is the canonical verse (ayah) record. ArabicText is never empty.
type Verse struct {
	ID          int    `json:"id"`
	ChapterID   int    `json:"chapter_id"`
	VerseNumber int    `json:"verse_number"`
	VerseKey    string `json:"verse_key"`
	ArabicText  string `json:"text_uthmani"`
	JuzNumber   int    `json:"juz_number"`
	PageNumber  int    `json:"page_number"`
	HizbNumber  int    `json:"hizb_number"`
	Sajdah      bool   `json:"sajdah"`
}

// Translation is one translated verse, aligned 1:1 with a Verse.
type Translation struct {
	VerseNumber int    `json:"verse_number"`
	VerseKey    string `json:"verse_key"`
	Text        string `json:"text"`
}

// VersesWithTranslation is the payload of a chapter text resolution.
// TranslationID is the identifier that actually produced the translations,
// which may differ from the one requested.
type VersesWithTranslation struct {
	Verses        []Verse       `json:"verses"`
	Translations  []Translation `json:"translations"`
	TranslationID string        `json:"translation_id"`
}

// HasTranslationText reports whether at least one translation carries non-empty text.
func HasTranslationText(translations []Translation) bool {
	for _, translation := range translations {
		if translation.Text != "" {
			return true
		}
	}
	return false
}

// AlignTranslations orders translations to match verses.
//
// A translation is matched by verse number, then by verse key, then by its position in the
// input. Verses without a match get an empty translation so both slices keep equal length.
func AlignTranslations(verses []Verse, translations []Translation) []Translation {
	byNumber := make(map[int]Translation, len(translations))
	byKey := make(map[string]Translation, len(translations))
	for _, translation := range translations {
		if translation.VerseNumber > 0 {
			byNumber[translation.VerseNumber] = translation
		}
		if translation.VerseKey != "" {
			byKey[translation.VerseKey] = translation
		}
	}

	aligned := make([]Translation, len(verses))
	for i, verse := range verses {
		translation, ok := byNumber[verse.VerseNumber]
		if !ok {
			translation, ok = byKey[verse.VerseKey]
		}
		if !ok && i < len(translations) {
			translation = translations[i]
		}
		aligned[i] = Translation{
			VerseNumber: verse.VerseNumber,
			VerseKey:    verse.VerseKey,
			Text:        translation.Text,
		}
	}
	return aligned
}
