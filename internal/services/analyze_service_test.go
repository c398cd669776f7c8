package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytchapters/internal/config"
	"ytchapters/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Chapters: config.ChaptersConfig{MinCount: 5, MaxCount: 10},
	}
}

func seedSubtitle(store *fakeStore, id string, userID string) *models.Subtitle {
	now := time.Now().Add(-time.Hour)
	sub := models.Subtitle{
		ID:              id,
		UserID:          userID,
		VideoID:         "dQw4w9WgXcQ",
		VideoTitle:      models.NullString("Some Video"),
		Language:        "en",
		Content:         "00:00:01.000 --> 00:00:03.000\nHello world",
		IsAutoGenerated: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	store.subtitles[id] = sub
	return &sub
}

func TestAnalyze_GeneratesAndStores(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{`[{"timestamp": "00:00", "title": "Intro"}]`}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	analysis, sub, err := svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)
	require.NotNil(t, analysis)
	require.NotNil(t, sub)
	assert.Equal(t, "sub-1", analysis.SubtitleID)
	assert.Equal(t, "user-1", analysis.UserID)
	assert.Equal(t, 1, gen.callCount())

	chapterList, err := analysis.DecodeChapters()
	require.NoError(t, err)
	require.Len(t, chapterList, 1)
	assert.Equal(t, "Intro", chapterList[0].Title)
}

func TestAnalyze_ReturnsCachedAnalysis(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{`[{"timestamp": "00:00", "title": "Intro"}]`}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	first, _, err := svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)
	second, _, err := svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)

	// 第二次不得再呼叫生成服務，回傳的是同一筆記錄
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(first.Chapters), string(second.Chapters))
}

func TestRegenerate_OverwritesExistingAnalysis(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{
		`[{"timestamp": "00:00", "title": "First Pass"}]`,
		`[{"timestamp": "00:00", "title": "Second Pass"}, {"timestamp": "02:30", "title": "More"}]`,
	}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	first, _, err := svc.Regenerate(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)
	second, _, err := svc.Regenerate(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, gen.callCount())
	// 每份字幕最多一筆分析記錄：ID 與 created_at 不變，章節被取代
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	require.Len(t, store.analyses, 1)

	chapterList, err := second.DecodeChapters()
	require.NoError(t, err)
	require.Len(t, chapterList, 2)
	assert.Equal(t, "Second Pass", chapterList[0].Title)
}

func TestAnalyze_OtherUsersSubtitleIsNotFound(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{`[]`}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	// 跨使用者存取與不存在必須是同一種錯誤
	_, _, err = svc.Analyze(context.Background(), "user-2", "sub-1", 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, _, err = svc.Analyze(context.Background(), "user-1", "no-such-subtitle", 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, 0, gen.callCount())
}

func TestAnalyze_MalformedOutputLeavesNoRecord(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{"I could not produce JSON, sorry."}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	_, _, err = svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	require.Error(t, err)
	assert.True(t, models.IsMalformedOutput(err))
	assert.Empty(t, store.analyses)
}

func TestAnalyze_GeneratorFailure(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{err: models.ErrCollaboratorUnavailable}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	_, _, err = svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	assert.True(t, errors.Is(err, models.ErrCollaboratorUnavailable))
	assert.Empty(t, store.analyses)
}

func TestGetAnalysis_ScopedByUser(t *testing.T) {
	store := newFakeStore()
	seedSubtitle(store, "sub-1", "user-1")
	gen := &fakeGenerator{responses: []string{`[{"timestamp": "00:00", "title": "Intro"}]`}}

	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	created, _, err := svc.Analyze(context.Background(), "user-1", "sub-1", 0)
	require.NoError(t, err)

	analysis, sub, err := svc.GetAnalysis("user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, analysis.ID)
	assert.Equal(t, "sub-1", sub.ID)

	_, _, err = svc.GetAnalysis("user-2", created.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListAnalyses_RequiresUser(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{responses: []string{`[]`}}
	svc, err := NewAnalyzeService(testConfig(), store, gen)
	require.NoError(t, err)

	_, _, err = svc.ListAnalyses("")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
}
