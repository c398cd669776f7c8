package handlers

import (
	"log"
	"net/http"

	"ytchapters/internal/models"
	"ytchapters/internal/web/middleware"
)

// VideoLister 定義了影片列表處理器需要的服務介面
type VideoLister interface {
	ListVideos(userID string) ([]models.Subtitle, error)
}

// VideosHandler 處理 GET /api/subtitles/videos
type VideosHandler struct {
	extractService VideoLister
}

// NewVideosHandler 建立 VideosHandler 實例
func NewVideosHandler(vl VideoLister) *VideosHandler {
	if vl == nil {
		log.Panicln("VideosHandler：VideoLister 不得為空")
	}
	return &VideosHandler{extractService: vl}
}

// ServeHTTP 實現 http.Handler 介面
func (h *VideosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	subtitles, err := h.extractService.ListVideos(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if subtitles == nil {
		subtitles = []models.Subtitle{}
	}
	writeJSON(w, http.StatusOK, subtitles)
}
