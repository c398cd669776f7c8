package services

import (
	"context"
	"sort"
	"sync"

	"ytchapters/internal/models"
)

// fakeStore 是 DBStore 的記憶體實現，行為模擬 MySQL 版本：
// 查無記錄回傳 (nil, nil)，UpsertAnalysis 以 subtitle_id 為唯一鍵。
type fakeStore struct {
	mu        sync.Mutex
	subtitles map[string]models.Subtitle         // key: subtitle ID
	analyses  map[string]models.SubtitleAnalysis // key: subtitle ID
	insertErr error
	// naturalKeyMisses 讓前 N 次自然鍵查詢回報查無記錄，
	// 用來模擬「查詢時還不存在、插入時已被並發寫入」的競爭時序。
	naturalKeyMisses int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subtitles: make(map[string]models.Subtitle),
		analyses:  make(map[string]models.SubtitleAnalysis),
	}
}

func (s *fakeStore) FindSubtitleByNaturalKey(videoID string, userID string, language string) (*models.Subtitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.naturalKeyMisses > 0 {
		s.naturalKeyMisses--
		return nil, nil
	}
	for _, sub := range s.subtitles {
		if sub.VideoID == videoID && sub.UserID == userID && sub.Language == language {
			subCopy := sub
			return &subCopy, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetSubtitleByID(id string, userID string) (*models.Subtitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subtitles[id]
	if !ok || sub.UserID != userID {
		return nil, nil
	}
	subCopy := sub
	return &subCopy, nil
}

func (s *fakeStore) InsertSubtitle(sub *models.Subtitle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.subtitles[sub.ID] = *sub
	return nil
}

func (s *fakeStore) ListSubtitles(userID string) ([]models.Subtitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Subtitle{}
	for _, sub := range s.subtitles {
		if sub.UserID == userID {
			list = append(list, sub)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (s *fakeStore) GetAnalysisBySubtitleID(subtitleID string) (*models.SubtitleAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.analyses[subtitleID]
	if !ok {
		return nil, nil
	}
	aCopy := a
	return &aCopy, nil
}

func (s *fakeStore) UpsertAnalysis(a *models.SubtitleAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.analyses[a.SubtitleID]; ok {
		// 唯一索引衝突：只更新章節與 updated_at，ID 與 created_at 不變
		existing.Chapters = a.Chapters
		existing.UpdatedAt = a.UpdatedAt
		s.analyses[a.SubtitleID] = existing
		return nil
	}
	s.analyses[a.SubtitleID] = *a
	return nil
}

func (s *fakeStore) GetAnalysisWithSubtitle(analysisID string, userID string) (*models.SubtitleAnalysis, *models.Subtitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.analyses {
		if a.ID == analysisID && a.UserID == userID {
			sub := s.subtitles[a.SubtitleID]
			aCopy, subCopy := a, sub
			return &aCopy, &subCopy, nil
		}
	}
	return nil, nil, nil
}

func (s *fakeStore) ListAnalysesWithSubtitles(userID string) ([]models.SubtitleAnalysis, []models.Subtitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	analyses := []models.SubtitleAnalysis{}
	subtitles := []models.Subtitle{}
	for _, a := range s.analyses {
		if a.UserID == userID {
			analyses = append(analyses, a)
			subtitles = append(subtitles, s.subtitles[a.SubtitleID])
		}
	}
	return analyses, subtitles, nil
}

// fakeGenerator 記錄呼叫次數並依序回傳預先排好的回應。
type fakeGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

func (g *fakeGenerator) GenerateChapters(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	idx := g.calls - 1
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	return g.responses[idx], nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// fakeFetcher 回傳固定的影片標題與字幕文件。
type fakeFetcher struct {
	title         string
	document      string
	titleErr      error
	downloadErr   error
	downloadCalls int
}

func (f *fakeFetcher) FetchVideoTitle(_ context.Context, _ string) (string, error) {
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.title, nil
}

func (f *fakeFetcher) DownloadCaptions(_ context.Context, _ string, _ string, _ string) (string, error) {
	f.downloadCalls++
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return f.document, nil
}
