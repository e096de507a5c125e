// Package mocks provides mock implementations of the content use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// MockResolver is a mock implementation of Resolver for testing.
type MockResolver struct {
	mock.Mock
}

// ListChapters mocks the ListChapters method of Resolver.
func (m *MockResolver) ListChapters(ctx context.Context) contentDomain.Resolved[[]contentDomain.Chapter] {
	args := m.Called(ctx)
	return args.Get(0).(contentDomain.Resolved[[]contentDomain.Chapter])
}

// GetVersesWithTranslation mocks the GetVersesWithTranslation method of Resolver.
func (m *MockResolver) GetVersesWithTranslation(
	ctx context.Context,
	chapter int,
	translationID string,
) contentDomain.Resolved[contentDomain.VersesWithTranslation] {
	args := m.Called(ctx, chapter, translationID)
	return args.Get(0).(contentDomain.Resolved[contentDomain.VersesWithTranslation])
}

// GetChapterAudio mocks the GetChapterAudio method of Resolver.
func (m *MockResolver) GetChapterAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[contentDomain.ChapterAudio] {
	args := m.Called(ctx, reciterID, chapter)
	return args.Get(0).(contentDomain.Resolved[contentDomain.ChapterAudio])
}

// GetVerseAudio mocks the GetVerseAudio method of Resolver.
func (m *MockResolver) GetVerseAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[[]contentDomain.AudioFile] {
	args := m.Called(ctx, reciterID, chapter)
	return args.Get(0).(contentDomain.Resolved[[]contentDomain.AudioFile])
}

// Status mocks the Status method of Resolver.
func (m *MockResolver) Status(ctx context.Context) contentDomain.Status {
	args := m.Called(ctx)
	return args.Get(0).(contentDomain.Status)
}
