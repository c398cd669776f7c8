package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ytchapters/internal/config"
	"ytchapters/internal/models"
	"ytchapters/internal/subtitle"
)

// ExtractService 負責字幕擷取流程：URL → 影片 ID → 下載字幕 →
// 解析與正規化 → 儲存逐字稿。
type ExtractService struct {
	cfg     *config.Config
	db      DBStore
	fetcher CaptionFetcher
}

// NewExtractService 建立 ExtractService 實例
func NewExtractService(cfg *config.Config, db DBStore, fetcher CaptionFetcher) (*ExtractService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ExtractService：設定不得為空")
	}
	if db == nil {
		return nil, fmt.Errorf("ExtractService：DBStore 不得為空")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("ExtractService：CaptionFetcher 不得為空")
	}
	log.Println("資訊：ExtractService 初始化完成。")
	return &ExtractService{cfg: cfg, db: db, fetcher: fetcher}, nil
}

// Extract 執行完整的字幕擷取流程。
// 同一位使用者對同一部影片同一語言的重複擷取直接回傳既有記錄，
// 不會重新下載。
func (s *ExtractService) Extract(ctx context.Context, userID string, rawURL string, lang string) (*models.Subtitle, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if lang == "" {
		lang = "en"
	}

	videoID, err := subtitle.ResolveVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	log.Printf("資訊：[ExtractService] 解析出影片 ID: %s (lang: %s)\n", videoID, lang)

	existing, err := s.db.FindSubtitleByNaturalKey(videoID, userID, lang)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("資訊：[ExtractService] 字幕已存在 (ID: %s)，直接回傳既有記錄。\n", existing.ID)
		return existing, nil
	}

	title, err := s.fetcher.FetchVideoTitle(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("[ExtractService] 查詢影片 %s 的元數據失敗: %w", videoID, err)
	}

	rawDocument, err := s.fetcher.DownloadCaptions(ctx, rawURL, videoID, lang)
	if err != nil {
		return nil, err
	}

	cues := subtitle.ParseCues(rawDocument)
	if len(cues) == 0 {
		// 文件存在但解析不出任何 cue，同樣視為沒有字幕
		log.Printf("資訊：[ExtractService] 影片 %s 的字幕文件解析不出任何 cue。\n", videoID)
		return nil, fmt.Errorf("影片 %s 的字幕文件沒有有效內容: %w", videoID, models.ErrCaptionsUnavailable)
	}

	now := time.Now()
	sub := &models.Subtitle{
		ID:              uuid.NewString(),
		UserID:          userID,
		VideoID:         videoID,
		VideoTitle:      models.NullString(title),
		Language:        lang,
		Content:         subtitle.Normalize(cues),
		IsAutoGenerated: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.db.InsertSubtitle(sub); err != nil {
		// 自然鍵上的唯一索引可能讓並發的重複擷取在這裡衝突，
		// 此時改回傳先贏的那筆記錄。
		if winner, findErr := s.db.FindSubtitleByNaturalKey(videoID, userID, lang); findErr == nil && winner != nil {
			log.Printf("資訊：[ExtractService] 並發擷取衝突，回傳既有字幕記錄 (ID: %s)。\n", winner.ID)
			return winner, nil
		}
		return nil, err
	}
	log.Printf("資訊：[ExtractService] 字幕擷取完成 (ID: %s, VideoID: %s, cue 數量: %d)。\n", sub.ID, videoID, len(cues))
	return sub, nil
}

// ListVideos 列出使用者已擷取的所有影片字幕，新的在前。
func (s *ExtractService) ListVideos(userID string) ([]models.Subtitle, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	return s.db.ListSubtitles(userID)
}
