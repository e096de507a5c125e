package service

import (
	"strings"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// URLGenerator derives public audio file locations from reciter, chapter and verse numbers.
// Unknown reciters map to the default reciter.
type URLGenerator struct {
	chapterBaseURL string
	verseBaseURL   string
}

// NewURLGenerator creates a URLGenerator for the public chapter and verse audio hosts.
func NewURLGenerator(chapterBaseURL, verseBaseURL string) *URLGenerator {
	return &URLGenerator{
		chapterBaseURL: strings.TrimRight(chapterBaseURL, "/"),
		verseBaseURL:   strings.TrimRight(verseBaseURL, "/"),
	}
}

// ChapterURL returns {chapterBase}/{folder}/{CCC}.mp3.
func (g *URLGenerator) ChapterURL(reciterID, chapter int) string {
	reciter := contentDomain.ReciterOrDefault(reciterID)
	return g.chapterBaseURL + "/" + reciter.ChapterFolder + "/" + contentDomain.Pad3(chapter) + ".mp3"
}

// VerseURL returns {verseBase}/{folder}/{CCC}{VVV}.mp3.
func (g *URLGenerator) VerseURL(reciterID, chapter, verse int) string {
	reciter := contentDomain.ReciterOrDefault(reciterID)
	return g.verseBaseURL + "/" + reciter.VerseFolder + "/" +
		contentDomain.Pad3(chapter) + contentDomain.Pad3(verse) + ".mp3"
}

// VerseFiles returns one file per verse of chapter, in verse order.
func (g *URLGenerator) VerseFiles(reciterID, chapter int) []contentDomain.AudioFile {
	count := contentDomain.VerseCount(chapter)
	files := make([]contentDomain.AudioFile, 0, count)
	for verse := 1; verse <= count; verse++ {
		files = append(files, contentDomain.AudioFile{
			VerseKey: contentDomain.VerseKey(chapter, verse),
			URL:      g.VerseURL(reciterID, chapter, verse),
			Format:   contentDomain.AudioFormatMP3,
		})
	}
	return files
}
