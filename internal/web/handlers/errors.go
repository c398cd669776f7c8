package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ytchapters/internal/models"
)

// writeJSON 輔助函式
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("錯誤：寫入 JSON 回應失敗: %v", err)
	}
}

// writeError 把固定的錯誤分類對應到 HTTP 狀態碼。
// 分類以外的錯誤一律回 500，不洩漏內部細節。
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidSourceURL):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "無效的影片 URL"})
	case errors.Is(err, models.ErrCaptionsUnavailable):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "此影片沒有可用的字幕"})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "找不到請求的資源"})
	case errors.Is(err, models.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "未通過身份驗證"})
	case errors.Is(err, models.ErrCollaboratorUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "外部服務暫時無法使用，請稍後重試"})
	case models.IsMalformedOutput(err):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "章節生成輸出無法解析"})
	default:
		log.Printf("錯誤：未分類的處理失敗: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "伺服器內部錯誤"})
	}
}
