package services

import (
	"context"

	"ytchapters/internal/models"
)

// DBStore 定義了服務層需要的資料庫操作介面
type DBStore interface {
	FindSubtitleByNaturalKey(videoID string, userID string, language string) (*models.Subtitle, error)
	GetSubtitleByID(id string, userID string) (*models.Subtitle, error)
	InsertSubtitle(sub *models.Subtitle) error
	ListSubtitles(userID string) ([]models.Subtitle, error)
	GetAnalysisBySubtitleID(subtitleID string) (*models.SubtitleAnalysis, error)
	UpsertAnalysis(a *models.SubtitleAnalysis) error
	GetAnalysisWithSubtitle(analysisID string, userID string) (*models.SubtitleAnalysis, *models.Subtitle, error)
	ListAnalysesWithSubtitles(userID string) ([]models.SubtitleAnalysis, []models.Subtitle, error)
}

// CaptionFetcher 定義了字幕來源抓取的介面（由 yt-dlp 客戶端實現）
type CaptionFetcher interface {
	FetchVideoTitle(ctx context.Context, videoURL string) (string, error)
	DownloadCaptions(ctx context.Context, videoURL string, videoID string, lang string) (string, error)
}

// ChapterGenerator 定義了章節生成服務的介面（由 Gemini 客戶端實現）
type ChapterGenerator interface {
	GenerateChapters(ctx context.Context, prompt string) (string, error)
}
