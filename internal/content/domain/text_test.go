package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTranslationText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "footnote marker", input: "In the Name of Allah<sup foot_note=12>1</sup> ", expected: "In the Name of Allah"},
		{name: "nested markup", input: "<p>All praise <i>is</i> for Allah</p>", expected: "All praise is for Allah"},
		{name: "plain text", input: "  Guide us  ", expected: "Guide us"},
		{name: "only markup", input: "<sup foot_note=1>2</sup>", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTranslationText(tt.input))
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{raw: "https://everyayah.com/data/Alafasy_128kbps/001001.mp3", expected: true},
		{raw: "HTTP://localhost:8080/x", expected: true},
		{raw: "/relative/path.mp3", expected: false},
		{raw: "//audio.qurancdn.com/a.mp3", expected: false},
		{raw: "ftp://example.com/a.mp3", expected: false},
		{raw: "https://", expected: false},
		{raw: "::not a url", expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsAbsoluteURL(tt.raw), tt.raw)
	}
}

func TestAllAbsolute(t *testing.T) {
	assert.True(t, AllAbsolute([]AudioFile{{URL: "https://everyayah.com/data/a/001001.mp3"}}))
	assert.False(t, AllAbsolute([]AudioFile{
		{URL: "https://everyayah.com/data/a/001001.mp3"},
		{URL: "https://"},
	}))
}

func TestAbsolutize(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		raw      string
		expected string
	}{
		{name: "absolute https", base: "https://a.example", raw: "https://b.example/x.mp3", expected: "https://b.example/x.mp3"},
		{name: "absolute http", base: "https://a.example", raw: "http://b.example/x.mp3", expected: "http://b.example/x.mp3"},
		{name: "relative no slash", base: "https://a.example", raw: "Alafasy/mp3/001001.mp3", expected: "https://a.example/Alafasy/mp3/001001.mp3"},
		{name: "relative leading slash", base: "https://a.example/", raw: "/x.mp3", expected: "https://a.example/x.mp3"},
		{name: "protocol relative", base: "https://a.example", raw: "//cdn.example/x.mp3", expected: "https://cdn.example/x.mp3"},
		{name: "empty", base: "https://a.example", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Absolutize(tt.base, tt.raw))
		})
	}
}

func TestVerseKey(t *testing.T) {
	assert.Equal(t, "2:255", VerseKey(2, 255))

	chapter, verse, ok := ParseVerseKey("2:255")
	assert.True(t, ok)
	assert.Equal(t, 2, chapter)
	assert.Equal(t, 255, verse)

	_, _, ok = ParseVerseKey("abc")
	assert.False(t, ok)
}

func TestPad3(t *testing.T) {
	assert.Equal(t, "001", Pad3(1))
	assert.Equal(t, "114", Pad3(114))
}

func TestNormalizeRevelationPlace(t *testing.T) {
	assert.Equal(t, RevelationMakkah, NormalizeRevelationPlace("Meccan"))
	assert.Equal(t, RevelationMakkah, NormalizeRevelationPlace("makkah"))
	assert.Equal(t, RevelationMadinah, NormalizeRevelationPlace("Medinan"))
	assert.Equal(t, "", NormalizeRevelationPlace(""))
}
