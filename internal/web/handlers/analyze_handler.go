package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"ytchapters/internal/models"
	"ytchapters/internal/web/middleware"
)

// ChapterAnalyzer 定義了章節分析處理器需要的服務介面
type ChapterAnalyzer interface {
	Analyze(ctx context.Context, userID string, subtitleID string, chapterCount int) (*models.SubtitleAnalysis, *models.Subtitle, error)
	Regenerate(ctx context.Context, userID string, subtitleID string, chapterCount int) (*models.SubtitleAnalysis, *models.Subtitle, error)
}

// AnalyzeHandler 處理 POST /api/ai/analyze/{subtitleId} 與
// POST /api/ai/regenerate/{subtitleId}。regenerate 為 true 時走
// 無條件重新生成的路徑。
type AnalyzeHandler struct {
	analyzeService ChapterAnalyzer
	regenerate     bool
}

// NewAnalyzeHandler 建立 AnalyzeHandler 實例
func NewAnalyzeHandler(as ChapterAnalyzer, regenerate bool) *AnalyzeHandler {
	if as == nil {
		log.Panicln("AnalyzeHandler：ChapterAnalyzer 不得為空")
	}
	return &AnalyzeHandler{analyzeService: as, regenerate: regenerate}
}

type analyzeRequest struct {
	ChapterCount int `json:"chapterCount"`
}

type analyzeResponse struct {
	SubtitleID string                `json:"subtitleId"`
	VideoID    string                `json:"videoId"`
	VideoTitle models.JsonNullString `json:"videoTitle"`
	AnalysisID string                `json:"analysisId"`
	Chapters   json.RawMessage       `json:"chapters"`
}

// ServeHTTP 實現 http.Handler 介面
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[AnalyzeHandler] 收到請求: %s %s 來自 %s (regenerate: %t)\n", r.Method, r.URL.Path, r.RemoteAddr, h.regenerate)

	subtitleID := r.PathValue("subtitleId")
	if subtitleID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "缺少字幕 ID"})
		return
	}

	// 請求主體可以省略；有主體但解碼失敗時忽略，視為未指定章節數
	var req analyzeRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			req.ChapterCount = 0
		}
	}

	userID := middleware.UserIDFromContext(r.Context())

	var analysis *models.SubtitleAnalysis
	var sub *models.Subtitle
	var err error
	if h.regenerate {
		analysis, sub, err = h.analyzeService.Regenerate(r.Context(), userID, subtitleID, req.ChapterCount)
	} else {
		analysis, sub, err = h.analyzeService.Analyze(r.Context(), userID, subtitleID, req.ChapterCount)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		SubtitleID: sub.ID,
		VideoID:    sub.VideoID,
		VideoTitle: sub.VideoTitle,
		AnalysisID: analysis.ID,
		Chapters:   analysis.Chapters,
	})
}
