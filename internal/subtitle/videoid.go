// Package subtitle 實現字幕處理核心：從 URL 解析影片 ID、
// 把原始字幕文件（WebVTT/SRT）解析成 cue 序列，以及把 cue 序列
// 正規化成帶時間戳的逐字稿。整個套件都是純函式，沒有 I/O。
package subtitle

import (
	"fmt"
	"regexp"

	"ytchapters/internal/models"
)

// videoIDPatterns 是依序嘗試的 URL 樣式列表。
// 同一部影片不論以哪種形式出現（watch、youtu.be、embed、/v/、shorts、
// 帶其他查詢參數的 watch），都必須解析出相同的 11 碼 ID。
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*[?&]v=([A-Za-z0-9_-]{11})`),
}

// ResolveVideoID 從任意形式的 YouTube URL 中解析出 11 碼影片 ID。
// 依序套用樣式列表，回傳第一個捕捉到的 ID；全部不匹配則回傳
// models.ErrInvalidSourceURL。
func ResolveVideoID(rawURL string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("無法從 URL '%s' 解析出影片 ID: %w", rawURL, models.ErrInvalidSourceURL)
}
