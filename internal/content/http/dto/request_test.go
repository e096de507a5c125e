package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersesRequest(t *testing.T) {
	t.Run("Success_FirstOfList", func(t *testing.T) {
		req := ParseVersesRequest("2", " 85 ,20")

		assert.Equal(t, 2, req.Chapter)
		assert.Equal(t, "85", req.TranslationID)
		assert.NoError(t, req.Validate())
	})

	t.Run("Success_EditionName", func(t *testing.T) {
		assert.NoError(t, ParseVersesRequest("1", "en.sahih").Validate())
	})

	t.Run("Error_NonNumericChapter", func(t *testing.T) {
		req := ParseVersesRequest("al-fatiha", "")

		assert.Equal(t, 0, req.Chapter)
		assert.Error(t, req.Validate())
	})

	t.Run("Error_ChapterOutOfRange", func(t *testing.T) {
		assert.Error(t, ParseVersesRequest("115", "").Validate())
	})
}

func TestParseAudioRequest(t *testing.T) {
	tests := []struct {
		name      string
		reciter   string
		chapter   string
		shouldErr bool
	}{
		{"valid", "7", "1", false},
		{"unknown reciter id", "42", "114", false},
		{"zero reciter", "0", "1", true},
		{"negative reciter", "-3", "1", true},
		{"missing chapter", "7", "", true},
		{"chapter too large", "7", "115", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseAudioRequest(tt.reciter, tt.chapter).Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
