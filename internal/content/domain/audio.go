package domain

// AudioFormatMP3 is the only audio format served by the known hosts.
const AudioFormatMP3 = "mp3"

// AudioFile references one playable audio file. URL is always absolute.
type AudioFile struct {
	VerseKey  string `json:"verse_key,omitempty"`
	ChapterID int    `json:"chapter_id,omitempty"`
	URL       string `json:"url"`
	Format    string `json:"format"`
}

// ChapterAudio is the payload of a whole-chapter audio resolution.
type ChapterAudio struct {
	ReciterID int    `json:"reciter_id"`
	ChapterID int    `json:"chapter_id"`
	URL       string `json:"url"`
	Format    string `json:"format"`
}

// AllAbsolute reports whether every file carries an absolute http(s) URL.
func AllAbsolute(files []AudioFile) bool {
	for _, file := range files {
		if !IsAbsoluteURL(file.URL) {
			return false
		}
	}
	return true
}
