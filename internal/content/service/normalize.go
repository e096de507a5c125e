package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// extractItems returns the list carried by one of the known envelope shapes:
// an object holding the list under one of keys, a bare array, or a "data" wrapper
// around either. Anything else, including an empty list, is ErrNoDataFound.
func extractItems(body []byte, keys ...string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", contentDomain.ErrNoDataFound)
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", contentDomain.ErrNoDataFound, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: empty list", contentDomain.ErrNoDataFound)
		}
		return items, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", contentDomain.ErrNoDataFound, err)
		}
		for _, key := range keys {
			if raw, ok := envelope[key]; ok && isArray(raw) {
				return extractItems(raw)
			}
		}
		if data, ok := envelope["data"]; ok {
			return extractItems(data, keys...)
		}
	}

	return nil, fmt.Errorf("%w: unrecognized envelope", contentDomain.ErrNoDataFound)
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// nextPage reads pagination.next_page; zero means there is no further page.
func nextPage(body []byte) int {
	var envelope struct {
		Pagination *struct {
			NextPage *int `json:"next_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Pagination == nil {
		return 0
	}
	if envelope.Pagination.NextPage == nil {
		return 0
	}
	return *envelope.Pagination.NextPage
}

// rawChapter accepts both the v4 and the v1 chapter field sets.
type rawChapter struct {
	ID                     int             `json:"id"`
	Number                 int             `json:"number"`
	NameArabic             string          `json:"name_arabic"`
	Name                   string          `json:"name"`
	NameComplex            string          `json:"name_complex"`
	NameSimple             string          `json:"name_simple"`
	EnglishName            string          `json:"englishName"`
	TranslatedName         json.RawMessage `json:"translated_name"`
	EnglishNameTranslation string          `json:"englishNameTranslation"`
	VersesCount            int             `json:"verses_count"`
	NumberOfAyahs          int             `json:"numberOfAyahs"`
	RevelationPlace        string          `json:"revelation_place"`
	RevelationType         string          `json:"revelationType"`
}

func (r rawChapter) toDomain() contentDomain.Chapter {
	chapter := contentDomain.Chapter{
		ID:              firstInt(r.ID, r.Number),
		ArabicName:      r.NameArabic,
		ComplexName:     firstString(r.NameComplex, r.NameSimple, r.EnglishName),
		TranslatedName:  firstString(translatedName(r.TranslatedName), r.EnglishNameTranslation),
		VerseCount:      firstInt(r.VersesCount, r.NumberOfAyahs),
		RevelationPlace: contentDomain.NormalizeRevelationPlace(firstString(r.RevelationPlace, r.RevelationType)),
	}
	// In the v1 field set "name" is the Arabic name.
	if chapter.ArabicName == "" && r.Number > 0 {
		chapter.ArabicName = r.Name
	}
	return chapter
}

// translatedName handles both {"name": "..."} and a plain string.
func translatedName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var object struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &object); err == nil {
		return object.Name
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return ""
}

// normalizeChapters decodes a chapter listing in any known envelope.
func normalizeChapters(body []byte) ([]contentDomain.Chapter, error) {
	items, err := extractItems(body, "chapters")
	if err != nil {
		return nil, err
	}

	chapters := make([]contentDomain.Chapter, 0, len(items))
	for _, item := range items {
		var raw rawChapter
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: chapter: %v", contentDomain.ErrNoDataFound, err)
		}
		chapter := raw.toDomain()
		if !chapter.Valid() {
			return nil, fmt.Errorf("%w: chapter without id or verse count", contentDomain.ErrNoDataFound)
		}
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}

type rawWord struct {
	CodeV1 string `json:"code_v1"`
}

// rawVerse accepts v4 verses, v4 translations and v1 ayahs.
type rawVerse struct {
	ID            int             `json:"id"`
	Number        int             `json:"number"`
	VerseNumber   int             `json:"verse_number"`
	NumberInSurah int             `json:"numberInSurah"`
	VerseKey      string          `json:"verse_key"`
	TextUthmani   string          `json:"text_uthmani"`
	TextIndopak   string          `json:"text_indopak"`
	TextImlaei    string          `json:"text_imlaei"`
	Text          string          `json:"text"`
	Words         []rawWord       `json:"words"`
	JuzNumber     int             `json:"juz_number"`
	Juz           int             `json:"juz"`
	PageNumber    int             `json:"page_number"`
	Page          int             `json:"page"`
	HizbNumber    int             `json:"hizb_number"`
	HizbQuarter   int             `json:"hizbQuarter"`
	SajdahNumber  *int            `json:"sajdah_number"`
	SajdahType    *string         `json:"sajdah_type"`
	Sajda         json.RawMessage `json:"sajda"`
	Audio         string          `json:"audio"`
}

// number resolves the verse number from whichever field the source provides.
func (r rawVerse) number(position int) int {
	if n := firstInt(r.VerseNumber, r.NumberInSurah); n > 0 {
		return n
	}
	if _, verse, ok := contentDomain.ParseVerseKey(r.VerseKey); ok {
		return verse
	}
	return position + 1
}

func (r rawVerse) key(chapter, number int) string {
	if r.VerseKey != "" {
		return r.VerseKey
	}
	return contentDomain.VerseKey(chapter, number)
}

// arabicText prefers the Uthmani script and reconstructs from word codes as a last resort.
func (r rawVerse) arabicText() string {
	if text := firstString(r.TextUthmani, r.TextIndopak, r.TextImlaei, r.Text); text != "" {
		return strings.TrimSpace(text)
	}
	codes := make([]string, 0, len(r.Words))
	for _, word := range r.Words {
		if word.CodeV1 != "" {
			codes = append(codes, word.CodeV1)
		}
	}
	return strings.TrimSpace(strings.Join(codes, " "))
}

func (r rawVerse) sajdah() bool {
	if r.SajdahNumber != nil || (r.SajdahType != nil && *r.SajdahType != "") {
		return true
	}
	trimmed := string(bytes.TrimSpace(r.Sajda))
	return trimmed != "" && trimmed != "false" && trimmed != "null"
}

func (r rawVerse) hizb() int {
	if r.HizbNumber > 0 {
		return r.HizbNumber
	}
	if r.HizbQuarter > 0 {
		return (r.HizbQuarter-1)/4 + 1
	}
	return 0
}

// normalizeVerses decodes verses of chapter. A verse without Arabic text fails the whole list.
func normalizeVerses(chapter int, body []byte) ([]contentDomain.Verse, error) {
	items, err := extractItems(body, "verses", "ayahs")
	if err != nil {
		return nil, err
	}
	return decodeVerses(chapter, items)
}

func decodeVerses(chapter int, items []json.RawMessage) ([]contentDomain.Verse, error) {
	verses := make([]contentDomain.Verse, 0, len(items))
	for i, item := range items {
		var raw rawVerse
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: verse: %v", contentDomain.ErrNoDataFound, err)
		}

		number := raw.number(i)
		verse := contentDomain.Verse{
			ID:          firstInt(raw.ID, raw.Number),
			ChapterID:   chapter,
			VerseNumber: number,
			VerseKey:    raw.key(chapter, number),
			ArabicText:  raw.arabicText(),
			JuzNumber:   firstInt(raw.JuzNumber, raw.Juz),
			PageNumber:  firstInt(raw.PageNumber, raw.Page),
			HizbNumber:  raw.hizb(),
			Sajdah:      raw.sajdah(),
		}
		if verse.ArabicText == "" {
			return nil, fmt.Errorf("%w: verse %s has no arabic text", contentDomain.ErrNoDataFound, verse.VerseKey)
		}
		verses = append(verses, verse)
	}
	return verses, nil
}

// normalizeTranslations decodes translations of chapter and cleans their markup.
func normalizeTranslations(chapter int, body []byte) ([]contentDomain.Translation, error) {
	items, err := extractItems(body, "translations", "ayahs")
	if err != nil {
		return nil, err
	}
	return decodeTranslations(chapter, items)
}

func decodeTranslations(chapter int, items []json.RawMessage) ([]contentDomain.Translation, error) {
	translations := make([]contentDomain.Translation, 0, len(items))
	for _, item := range items {
		var raw rawVerse
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: translation: %v", contentDomain.ErrNoDataFound, err)
		}

		translation := contentDomain.Translation{
			VerseNumber: firstInt(raw.VerseNumber, raw.NumberInSurah),
			VerseKey:    raw.VerseKey,
			Text:        contentDomain.CleanTranslationText(raw.Text),
		}
		if translation.VerseKey == "" && translation.VerseNumber > 0 {
			translation.VerseKey = contentDomain.VerseKey(chapter, translation.VerseNumber)
		}
		translations = append(translations, translation)
	}

	if !contentDomain.HasTranslationText(translations) {
		return nil, fmt.Errorf("%w: translations carry no text", contentDomain.ErrNoDataFound)
	}
	return translations, nil
}

// normalizeChapterAudio reads the audio URL from {audio_file:{audio_url}}, {audio_url} or {url}.
func normalizeChapterAudio(body []byte) (string, error) {
	var envelope struct {
		AudioFile *struct {
			AudioURL string `json:"audio_url"`
			URL      string `json:"url"`
		} `json:"audio_file"`
		AudioURL string `json:"audio_url"`
		URL      string `json:"url"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: chapter audio: %v", contentDomain.ErrNoDataFound, err)
	}

	var audioURL string
	if envelope.AudioFile != nil {
		audioURL = firstString(envelope.AudioFile.AudioURL, envelope.AudioFile.URL)
	}
	audioURL = firstString(audioURL, envelope.AudioURL, envelope.URL)
	if audioURL == "" {
		return "", fmt.Errorf("%w: chapter audio url missing", contentDomain.ErrNoDataFound)
	}
	return audioURL, nil
}

type rawAudioFile struct {
	VerseKey string `json:"verse_key"`
	URL      string `json:"url"`
	AudioURL string `json:"audio_url"`
	Format   string `json:"format"`
}

// normalizeVerseAudio decodes verse audio files, qualifying relative URLs with baseURL.
func normalizeVerseAudio(items []json.RawMessage, baseURL string) ([]contentDomain.AudioFile, error) {
	files := make([]contentDomain.AudioFile, 0, len(items))
	for _, item := range items {
		var raw rawAudioFile
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: audio file: %v", contentDomain.ErrNoDataFound, err)
		}
		audioURL := contentDomain.Absolutize(baseURL, firstString(raw.URL, raw.AudioURL))
		if audioURL == "" || raw.VerseKey == "" {
			return nil, fmt.Errorf("%w: audio file without verse key or url", contentDomain.ErrNoDataFound)
		}
		files = append(files, contentDomain.AudioFile{
			VerseKey: raw.VerseKey,
			URL:      audioURL,
			Format:   firstString(raw.Format, contentDomain.AudioFormatMP3),
		})
	}
	return files, nil
}

func firstString(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, value := range values {
		if value != 0 {
			return value
		}
	}
	return 0
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
