package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ytchapters/internal/models"
	"ytchapters/internal/web/middleware"
)

// AnalysisReader 定義了分析查詢處理器需要的服務介面
type AnalysisReader interface {
	GetAnalysis(userID string, analysisID string) (*models.SubtitleAnalysis, *models.Subtitle, error)
	ListAnalyses(userID string) ([]models.SubtitleAnalysis, []models.Subtitle, error)
}

// analysisView 是分析記錄的對外呈現，附帶字幕元數據
type analysisView struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Chapters  json.RawMessage `json:"chapters"`
	Subtitle  subtitleView    `json:"subtitles"`
}

type subtitleView struct {
	ID         string                `json:"id"`
	VideoID    string                `json:"video_id"`
	VideoTitle models.JsonNullString `json:"video_title"`
	Language   string                `json:"language"`
}

func newAnalysisView(a models.SubtitleAnalysis, sub models.Subtitle) analysisView {
	return analysisView{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Chapters:  a.Chapters,
		Subtitle: subtitleView{
			ID:         sub.ID,
			VideoID:    sub.VideoID,
			VideoTitle: sub.VideoTitle,
			Language:   sub.Language,
		},
	}
}

// ListAnalysesHandler 處理 GET /api/ai/analyses
type ListAnalysesHandler struct {
	analyzeService AnalysisReader
}

// NewListAnalysesHandler 建立 ListAnalysesHandler 實例
func NewListAnalysesHandler(ar AnalysisReader) *ListAnalysesHandler {
	if ar == nil {
		log.Panicln("ListAnalysesHandler：AnalysisReader 不得為空")
	}
	return &ListAnalysesHandler{analyzeService: ar}
}

// ServeHTTP 實現 http.Handler 介面
func (h *ListAnalysesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	analyses, subtitles, err := h.analyzeService.ListAnalyses(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]analysisView, 0, len(analyses))
	for i := range analyses {
		views = append(views, newAnalysisView(analyses[i], subtitles[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetAnalysisHandler 處理 GET /api/ai/analyses/{analysisId}
type GetAnalysisHandler struct {
	analyzeService AnalysisReader
}

// NewGetAnalysisHandler 建立 GetAnalysisHandler 實例
func NewGetAnalysisHandler(ar AnalysisReader) *GetAnalysisHandler {
	if ar == nil {
		log.Panicln("GetAnalysisHandler：AnalysisReader 不得為空")
	}
	return &GetAnalysisHandler{analyzeService: ar}
}

// ServeHTTP 實現 http.Handler 介面
func (h *GetAnalysisHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	analysisID := r.PathValue("analysisId")
	if analysisID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "缺少分析 ID"})
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	analysis, sub, err := h.analyzeService.GetAnalysis(userID, analysisID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAnalysisView(*analysis, *sub))
}
