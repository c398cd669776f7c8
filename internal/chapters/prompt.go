// Package chapters 實現章節生成的兩個純邏輯步驟：
// 組出生成服務的指令字串，以及把生成服務的原始輸出解碼成章節列表。
package chapters

import (
	"fmt"
)

// 預設章節數範圍。舊版曾允許最少 3 章，此處統一採用 5–10 作為
// 唯一的標準預設；需要其他範圍時由設定檔覆寫。
const (
	DefaultMinChapters = 5
	DefaultMaxChapters = 10
)

// PromptOptions 控制指令字串的生成約束。
type PromptOptions struct {
	// ChapterCount 大於 0 時要求生成「恰好」這麼多章節，
	// 否則採用 [MinChapters, MaxChapters] 的可變範圍。
	ChapterCount int
	MinChapters  int
	MaxChapters  int
}

// BuildPrompt 依逐字稿內容和選項生成完整的指令字串。
// 純字串模板函式，沒有 I/O；相同輸入必得相同輸出。
func BuildPrompt(transcript string, opts PromptOptions) string {
	minCh := opts.MinChapters
	maxCh := opts.MaxChapters
	if minCh <= 0 {
		minCh = DefaultMinChapters
	}
	if maxCh < minCh {
		maxCh = DefaultMaxChapters
	}

	chapterInstruction := fmt.Sprintf("Keep the number of chapters between %d-%d, only creating new chapters when there's a significant topic change.", minCh, maxCh)
	guidelines := fmt.Sprintf("- Maximum %d chapters", maxCh)
	if opts.ChapterCount > 0 {
		chapterInstruction = fmt.Sprintf("Create exactly %d logical chapters.", opts.ChapterCount)
		guidelines = fmt.Sprintf("- Create exactly %d chapters", opts.ChapterCount)
	}

	return fmt.Sprintf(`Analyze the following video transcript and create a minimal set of logical chapters. Focus only on major topic transitions and key points.
%s
Format the response as a JSON array of objects with 'timestamp' and 'title' properties.
Example format:
[
  {"timestamp": "00:00", "title": "Introduction"},
  {"timestamp": "02:30", "title": "Main Topic"},
  {"timestamp": "05:45", "title": "Conclusion"}
]
Guidelines:
- Create only essential chapters
- Use clear, concise titles
- Only include timestamps for significant topic changes
- Avoid creating too many small chapters
%s

Here's the transcript:

%s`, chapterInstruction, guidelines, transcript)
}
