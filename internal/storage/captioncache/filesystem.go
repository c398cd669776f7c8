// Package captioncache 管理 yt-dlp 下載字幕檔所用的本地暫存目錄。
package captioncache

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// FileSystemCache 結構負責與本地檔案系統互動
type FileSystemCache struct {
	basePath string
}

// NewFileSystemCache 建立一個 FileSystemCache 實例。
// 它會檢查 basePath 是否存在，如果不存在則嘗試建立它。
func NewFileSystemCache(tempDir string) (*FileSystemCache, error) {
	if tempDir == "" {
		return nil, fmt.Errorf("字幕暫存目錄路徑不得為空")
	}

	absBasePath, err := filepath.Abs(tempDir)
	if err != nil {
		return nil, fmt.Errorf("無法取得暫存目錄的絕對路徑 '%s': %w", tempDir, err)
	}

	if _, err := os.Stat(absBasePath); os.IsNotExist(err) {
		log.Printf("資訊：字幕暫存目錄 '%s' 不存在，正在嘗試建立...", absBasePath)
		if err := os.MkdirAll(absBasePath, 0o755); err != nil {
			return nil, fmt.Errorf("無法建立字幕暫存目錄 '%s': %w", absBasePath, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("檢查字幕暫存目錄 '%s' 時發生錯誤: %w", absBasePath, err)
	}

	log.Printf("資訊：FileSystemCache 初始化成功，字幕暫存根路徑: %s", absBasePath)
	return &FileSystemCache{basePath: absBasePath}, nil
}

// OutputBase 回傳 yt-dlp 輸出檔名的基底路徑（不含副檔名）。
// yt-dlp 會在後面補上 ".<語言>.vtt" 或 ".<語言>.srt"。
func (fc *FileSystemCache) OutputBase(videoID string) string {
	// filepath.Base 防止 videoID 內含路徑分隔符
	return filepath.Join(fc.basePath, filepath.Base(videoID))
}

// ReadAndRemove 讀取一個已下載的字幕檔並立即刪除它。
// 檔案不存在時回傳 os.ErrNotExist，由呼叫端決定要不要嘗試下一種格式。
func (fc *FileSystemCache) ReadAndRemove(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		log.Printf("警告：刪除暫存字幕檔 '%s' 失敗: %v", path, err)
	}
	return string(data), nil
}

// Prune 刪除暫存目錄中早於 maxAge 的殘留檔案，回傳刪除數量。
// 正常流程會在讀取後立即刪檔，這裡清的是下載中斷留下的孤兒檔案。
func (fc *FileSystemCache) Prune(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(fc.basePath)
	if err != nil {
		return 0, fmt.Errorf("讀取暫存目錄 '%s' 失敗: %w", fc.basePath, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("警告：讀取暫存檔 '%s' 資訊失敗: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		fullPath := filepath.Join(fc.basePath, entry.Name())
		if err := os.Remove(fullPath); err != nil {
			log.Printf("警告：刪除過期暫存檔 '%s' 失敗: %v", fullPath, err)
			continue
		}
		removed++
	}
	return removed, nil
}
