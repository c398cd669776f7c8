// Package ytdlp 包裝 yt-dlp 執行檔，提供影片元數據查詢與字幕下載。
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"

	"ytchapters/internal/models"
	"ytchapters/internal/storage/captioncache"
)

// Client 結構用於執行 yt-dlp 命令
type Client struct {
	binaryPath string
	cache      *captioncache.FileSystemCache
}

// NewClient 建立一個 yt-dlp 客戶端實例
func NewClient(binaryPath string, cache *captioncache.FileSystemCache) (*Client, error) {
	if binaryPath == "" {
		return nil, fmt.Errorf("yt-dlp 執行檔路徑不得為空")
	}
	if cache == nil {
		return nil, fmt.Errorf("FileSystemCache 不得為空")
	}
	log.Printf("資訊：[YtDlp Client] 初始化完成 (binary: %s)。\n", binaryPath)
	return &Client{binaryPath: binaryPath, cache: cache}, nil
}

// videoInfo 只取 --dump-single-json 輸出中需要的欄位
type videoInfo struct {
	Title string `json:"title"`
}

// FetchVideoTitle 透過 yt-dlp 查詢影片標題。
// 執行失敗包裝為 models.ErrCollaboratorUnavailable。
func (c *Client) FetchVideoTitle(ctx context.Context, videoURL string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binaryPath,
		"--dump-single-json",
		"--no-warnings",
		"--no-check-certificates",
		"--skip-download",
		videoURL,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Printf("錯誤：[YtDlp Client] 查詢影片元數據失敗: %v (stderr: %s)\n", err, firstNChars(stderr.String(), 200))
		return "", fmt.Errorf("yt-dlp 查詢影片元數據失敗: %v: %w", err, models.ErrCollaboratorUnavailable)
	}

	var info videoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		log.Printf("警告：[YtDlp Client] 解析影片元數據 JSON 失敗: %v\n", err)
		return "", nil
	}
	return info.Title, nil
}

// DownloadCaptions 下載指定語言的自動字幕並回傳原始文件內容。
// 依固定偏好順序嘗試 VTT、再 SRT；兩者都不存在時回傳
// models.ErrCaptionsUnavailable（這是否定結果，不是抓取失敗）。
// 讀取成功後暫存檔立即刪除。
func (c *Client) DownloadCaptions(ctx context.Context, videoURL string, videoID string, lang string) (string, error) {
	outputBase := c.cache.OutputBase(videoID)

	cmd := exec.CommandContext(ctx, c.binaryPath,
		"--skip-download",
		"--write-auto-subs",
		"--sub-format", "vtt/srt",
		"--sub-langs", lang,
		"--no-warnings",
		"--no-check-certificates",
		"--output", outputBase,
		videoURL,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Printf("錯誤：[YtDlp Client] 下載字幕失敗 (videoID: %s, lang: %s): %v (stderr: %s)\n", videoID, lang, err, firstNChars(stderr.String(), 200))
		return "", fmt.Errorf("yt-dlp 下載字幕失敗 (videoID: %s): %v: %w", videoID, err, models.ErrCollaboratorUnavailable)
	}

	// 依偏好順序嘗試兩種格式的輸出檔
	for _, path := range []string{
		fmt.Sprintf("%s.%s.vtt", outputBase, lang),
		fmt.Sprintf("%s.%s.srt", outputBase, lang),
	} {
		content, err := c.cache.ReadAndRemove(path)
		if err == nil {
			log.Printf("資訊：[YtDlp Client] 字幕下載成功 (videoID: %s, 檔案: %s, 長度: %d)。\n", videoID, path, len(content))
			return content, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("讀取字幕暫存檔 '%s' 失敗: %w", path, err)
		}
	}

	log.Printf("資訊：[YtDlp Client] 影片 %s 沒有 '%s' 語言的字幕。\n", videoID, lang)
	return "", fmt.Errorf("影片 %s 沒有 '%s' 語言的字幕: %w", videoID, lang, models.ErrCaptionsUnavailable)
}

// firstNChars 輔助函式
func firstNChars(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
