package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"ytchapters/internal/models"
	"ytchapters/internal/web/middleware"
)

// SubtitleExtractor 定義了擷取處理器需要的服務介面
type SubtitleExtractor interface {
	Extract(ctx context.Context, userID string, rawURL string, lang string) (*models.Subtitle, error)
}

// ExtractHandler 處理 POST /api/subtitles/extract
type ExtractHandler struct {
	extractService SubtitleExtractor
}

// NewExtractHandler 建立 ExtractHandler 實例
func NewExtractHandler(es SubtitleExtractor) *ExtractHandler {
	if es == nil {
		log.Panicln("ExtractHandler：SubtitleExtractor 不得為空")
	}
	return &ExtractHandler{extractService: es}
}

type extractRequest struct {
	URL string `json:"url"`
}

// ServeHTTP 實現 http.Handler 介面
func (h *ExtractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[ExtractHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "請求內容必須包含 url 欄位"})
		return
	}
	lang := r.URL.Query().Get("lang")

	userID := middleware.UserIDFromContext(r.Context())
	sub, err := h.extractService.Extract(r.Context(), userID, req.URL, lang)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": sub.ID})
}
