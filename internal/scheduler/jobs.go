package scheduler

import (
	"log"
	"time"

	"ytchapters/internal/storage/captioncache"
)

// CleanupJob 是一個排程任務，用於清理字幕暫存目錄中的孤兒檔案
type CleanupJob struct {
	cache  *captioncache.FileSystemCache
	maxAge time.Duration
}

// NewCleanupJob 建立一個 CleanupJob
func NewCleanupJob(cache *captioncache.FileSystemCache, maxAge time.Duration) *CleanupJob {
	return &CleanupJob{cache: cache, maxAge: maxAge}
}

// Run 實現 cron.Job 介面 (github.com/robfig/cron/v3)
func (j *CleanupJob) Run() {
	log.Println("資訊：執行排程任務 - 字幕暫存目錄清理...")
	removed, err := j.cache.Prune(j.maxAge)
	if err != nil {
		log.Printf("錯誤：字幕暫存目錄清理任務執行失敗: %v", err)
		return
	}
	log.Printf("資訊：字幕暫存目錄清理任務執行完成，刪除 %d 個過期檔案。\n", removed)
}
