package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ytchapters/internal/chapters"
	"ytchapters/internal/config"
	"ytchapters/internal/models"
)

// AnalyzeService 負責章節分析的調和邏輯：每份字幕最多一筆分析記錄，
// Analyze 是以字幕 ID 為鍵的讀穿快取，Regenerate 是唯一能覆寫章節的路徑。
type AnalyzeService struct {
	cfg       *config.Config
	db        DBStore
	generator ChapterGenerator
}

// NewAnalyzeService 建立 AnalyzeService 實例
func NewAnalyzeService(cfg *config.Config, db DBStore, generator ChapterGenerator) (*AnalyzeService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("AnalyzeService：設定不得為空")
	}
	if db == nil {
		return nil, fmt.Errorf("AnalyzeService：DBStore 不得為空")
	}
	if generator == nil {
		return nil, fmt.Errorf("AnalyzeService：ChapterGenerator 不得為空")
	}
	log.Println("資訊：AnalyzeService 初始化完成。")
	return &AnalyzeService{cfg: cfg, db: db, generator: generator}, nil
}

// Analyze 為字幕生成章節。已有分析記錄時直接回傳，不會再次呼叫生成服務；
// 沒有時才走 prompt → 生成 → 解碼 → 儲存的完整流程。
// 字幕不存在或屬於其他使用者時回傳 models.ErrNotFound。
func (s *AnalyzeService) Analyze(ctx context.Context, userID string, subtitleID string, chapterCount int) (*models.SubtitleAnalysis, *models.Subtitle, error) {
	sub, err := s.fetchSubtitle(userID, subtitleID)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.db.GetAnalysisBySubtitleID(sub.ID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		log.Printf("資訊：[AnalyzeService] 字幕 %s 已有分析記錄 (ID: %s)，直接回傳。\n", sub.ID, existing.ID)
		return existing, sub, nil
	}

	analysis, err := s.generateAndStore(ctx, sub, chapterCount)
	if err != nil {
		return nil, nil, err
	}
	return analysis, sub, nil
}

// Regenerate 無條件重新生成章節。既有分析記錄的章節列表會被取代並
// 更新 updated_at；沒有時建立新記錄。
func (s *AnalyzeService) Regenerate(ctx context.Context, userID string, subtitleID string, chapterCount int) (*models.SubtitleAnalysis, *models.Subtitle, error) {
	sub, err := s.fetchSubtitle(userID, subtitleID)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := s.generateAndStore(ctx, sub, chapterCount)
	if err != nil {
		return nil, nil, err
	}
	return analysis, sub, nil
}

// GetAnalysis 查詢單一分析記錄及其字幕元數據。
// 不存在或屬於其他使用者時回傳 models.ErrNotFound。
func (s *AnalyzeService) GetAnalysis(userID string, analysisID string) (*models.SubtitleAnalysis, *models.Subtitle, error) {
	if userID == "" {
		return nil, nil, models.ErrUnauthenticated
	}
	analysis, sub, err := s.db.GetAnalysisWithSubtitle(analysisID, userID)
	if err != nil {
		return nil, nil, err
	}
	if analysis == nil {
		return nil, nil, fmt.Errorf("分析記錄 %s: %w", analysisID, models.ErrNotFound)
	}
	return analysis, sub, nil
}

// ListAnalyses 列出使用者的所有分析記錄及對應字幕元數據，新的在前。
func (s *AnalyzeService) ListAnalyses(userID string) ([]models.SubtitleAnalysis, []models.Subtitle, error) {
	if userID == "" {
		return nil, nil, models.ErrUnauthenticated
	}
	return s.db.ListAnalysesWithSubtitles(userID)
}

// fetchSubtitle 以使用者為範圍取得字幕。不存在和跨使用者存取刻意
// 回傳同一種錯誤，避免洩漏字幕是否存在。
func (s *AnalyzeService) fetchSubtitle(userID string, subtitleID string) (*models.Subtitle, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if subtitleID == "" {
		return nil, fmt.Errorf("字幕 ID 不得為空: %w", models.ErrNotFound)
	}
	sub, err := s.db.GetSubtitleByID(subtitleID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("字幕 %s: %w", subtitleID, models.ErrNotFound)
	}
	return sub, nil
}

// generateAndStore 執行 prompt → 生成 → 解碼 → 儲存。生成與儲存視為
// 單一邏輯步驟：任何一步失敗都會回報錯誤，且不會留下半寫入的記錄。
func (s *AnalyzeService) generateAndStore(ctx context.Context, sub *models.Subtitle, chapterCount int) (*models.SubtitleAnalysis, error) {
	prompt := chapters.BuildPrompt(sub.Content, chapters.PromptOptions{
		ChapterCount: chapterCount,
		MinChapters:  s.cfg.Chapters.MinCount,
		MaxChapters:  s.cfg.Chapters.MaxCount,
	})

	rawResponse, err := s.generator.GenerateChapters(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("[AnalyzeService] 字幕 %s 的章節生成失敗: %w", sub.ID, err)
	}

	chapterList, err := chapters.ParseResponse(rawResponse)
	if err != nil {
		log.Printf("錯誤：[AnalyzeService] 字幕 %s 的生成輸出解碼失敗。原始輸出 (前200字元): %s\n", sub.ID, firstNChars(rawResponse, 200))
		return nil, err
	}

	chaptersJSON, err := json.Marshal(chapterList)
	if err != nil {
		return nil, fmt.Errorf("[AnalyzeService] 序列化章節列表失敗: %w", err)
	}

	// 既有記錄保留其 ID 與 created_at；沒有時建立新記錄。
	// UpsertAnalysis 靠 subtitle_id 上的唯一索引解決並發競爭。
	now := time.Now()
	analysis := &models.SubtitleAnalysis{
		ID:         uuid.NewString(),
		SubtitleID: sub.ID,
		UserID:     sub.UserID,
		Chapters:   chaptersJSON,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing, err := s.db.GetAnalysisBySubtitleID(sub.ID); err == nil && existing != nil {
		analysis.ID = existing.ID
		analysis.CreatedAt = existing.CreatedAt
	}

	if err := s.db.UpsertAnalysis(analysis); err != nil {
		return nil, err
	}

	// 回讀儲存後的記錄：並發寫入時以資料庫中的那筆為準
	stored, err := s.db.GetAnalysisBySubtitleID(sub.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("[AnalyzeService] 分析記錄寫入後讀取失敗 (SubtitleID: %s): %w", sub.ID, models.ErrCollaboratorUnavailable)
	}
	log.Printf("資訊：[AnalyzeService] 字幕 %s 的章節分析完成 (AnalysisID: %s, 章節數: %d)。\n", sub.ID, stored.ID, len(chapterList))
	return stored, nil
}

// firstNChars 輔助函式
func firstNChars(s string, n int) string {
	if len(s) > n {
		runes := []rune(s)
		if len(runes) > n {
			return string(runes[:n])
		}
	}
	return s
}
