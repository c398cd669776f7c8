package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ytchapters/internal/storage/captioncache"
)

// Scheduler 結構
type Scheduler struct {
	cron       *cron.Cron
	cleanupJob *CleanupJob
}

// NewScheduler 建立排程器並註冊清理任務
func NewScheduler(cache *captioncache.FileSystemCache, cleanupCronSpec string, maxAge time.Duration) *Scheduler {
	c := cron.New(cron.WithSeconds())

	cleanupJob := NewCleanupJob(cache, maxAge)
	if cleanupCronSpec != "" {
		_, err := c.AddJob(cleanupCronSpec, cleanupJob)
		if err != nil {
			log.Fatalf("錯誤：無法新增暫存清理任務到排程器 (spec: %s): %v", cleanupCronSpec, err)
		}
		log.Printf("資訊：暫存清理任務已註冊，排程：%s\n", cleanupCronSpec)
	} else {
		log.Println("警告：未提供暫存清理任務的 Cron 表達式，該任務將不會被排程。")
	}

	return &Scheduler{cron: c, cleanupJob: cleanupJob}
}

// Start 非阻塞啟動排程器
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("資訊：排程器已非阻塞啟動。")
}

// Stop 優雅停止排程器，等待運行中的任務結束
func (s *Scheduler) Stop() {
	log.Println("資訊：正在停止排程器...")
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		log.Println("資訊：排程器已優雅停止，所有運行中任務已完成。")
	case <-time.After(10 * time.Second):
		log.Println("警告：排程器停止超時，可能仍有任務在執行。")
	}
}
