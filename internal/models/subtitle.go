package models

import (
	"encoding/json"
	"time"
)

// Subtitle 對應 subtitles 資料表。
// 以 (VideoID, UserID, Language) 作為自然鍵：同一位使用者對同一部影片
// 同一語言的重複擷取會直接回傳既有記錄，不會重新抓取。
type Subtitle struct {
	ID              string         `json:"id"`
	UserID          string         `json:"-"`
	VideoID         string         `json:"video_id"`
	VideoTitle      JsonNullString `json:"video_title"`
	Language        string         `json:"language"`
	Content         string         `json:"-"`
	IsAutoGenerated bool           `json:"is_auto_generated"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"-"`
}

// Chapter 是章節列表中的一個元素。
// Timestamp 是顯示用字串（MM:SS 或 HH:MM:SS），不會對照逐字稿長度驗證。
type Chapter struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// SubtitleAnalysis 對應 subtitle_analyses 資料表。
// 每份字幕最多只能有一筆分析記錄，由 subtitle_id 上的唯一索引保證。
type SubtitleAnalysis struct {
	ID         string          `json:"id"`
	SubtitleID string          `json:"subtitle_id"`
	UserID     string          `json:"-"`
	Chapters   json.RawMessage `json:"chapters"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DecodeChapters 將儲存的章節 JSON 還原為型別化的列表。
func (a *SubtitleAnalysis) DecodeChapters() ([]Chapter, error) {
	var chapters []Chapter
	if err := json.Unmarshal(a.Chapters, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}
