// Package domain defines the canonical content records produced by the resolver,
// independent of which upstream source answered.
package domain

// Revelation places.
const (
	RevelationMakkah  = "makkah"
	RevelationMadinah = "madinah"
)

// Chapter is the canonical chapter (surah) record.
type Chapter struct {
	ID              int    `json:"id"`
	ArabicName      string `json:"name_arabic"`
	ComplexName     string `json:"name_complex"`
	TranslatedName  string `json:"translated_name"`
	VerseCount      int    `json:"verses_count"`
	RevelationPlace string `json:"revelation_place"`
}

// Valid reports whether the chapter carries a usable id and verse count.
func (c Chapter) Valid() bool {
	return IsValidChapter(c.ID) && c.VerseCount > 0
}
