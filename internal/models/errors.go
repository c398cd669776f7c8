package models

import (
	"errors"
	"fmt"
)

// 固定的錯誤分類。所有外部協作者（資料庫、Gemini、yt-dlp）回傳的錯誤
// 必須在邊界層立即包裝成以下其中一種，核心邏輯只認這些錯誤。
var (
	// ErrInvalidSourceURL 表示輸入的 URL 無法解析出影片 ID，使用者可自行修正。
	ErrInvalidSourceURL = errors.New("無效的影片來源 URL")

	// ErrCaptionsUnavailable 表示影片有效，但指定語言沒有任何字幕。
	// 注意：這與抓取失敗（ErrCollaboratorUnavailable）不同。
	ErrCaptionsUnavailable = errors.New("此影片沒有可用的字幕")

	// ErrCollaboratorUnavailable 表示資料庫或生成服務無法連線，呼叫端可稍後重試。
	ErrCollaboratorUnavailable = errors.New("外部協作服務暫時無法使用")

	// ErrNotFound 表示實體不存在，或不屬於發出請求的使用者。
	// 兩種情況對呼叫端刻意不可區分，避免洩漏實體是否存在。
	ErrNotFound = errors.New("找不到請求的資源")

	// ErrUnauthenticated 表示請求未通過身份驗證。
	ErrUnauthenticated = errors.New("未通過身份驗證")
)

// MalformedOutputError 表示生成服務有回應，但輸出無法解碼為章節列表。
// 不會自動重試；Raw 保留原始回應內容供營運人員診斷。
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("生成服務輸出無法解碼為章節列表: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// IsMalformedOutput 判斷錯誤鏈中是否包含 MalformedOutputError。
func IsMalformedOutput(err error) bool {
	var target *MalformedOutputError
	return errors.As(err, &target)
}
