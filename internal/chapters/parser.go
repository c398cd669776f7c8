package chapters

import (
	"encoding/json"
	"fmt"
	"strings"

	"ytchapters/internal/models"
)

// ParseResponse 把生成服務回傳的原始文字嚴格解碼成章節列表。
// 生成服務雖被要求輸出 JSON，但不能假設它真的遵守：LLM 的輸出偶爾會
// 包著 markdown 代碼塊標記，先剝掉再解碼。解碼失敗一律回傳
// models.MalformedOutputError 並附上原始文字供診斷，絕不猜測或
// 回傳部分章節列表。
func ParseResponse(raw string) ([]models.Chapter, error) {
	cleaned := stripCodeFence(raw)

	var chapterList []models.Chapter
	if err := json.Unmarshal([]byte(cleaned), &chapterList); err != nil {
		return nil, &models.MalformedOutputError{Raw: raw, Err: err}
	}
	if len(chapterList) == 0 {
		return nil, &models.MalformedOutputError{Raw: raw, Err: fmt.Errorf("章節列表為空")}
	}
	return chapterList, nil
}

// stripCodeFence 移除 LLM 回應常見的 ```json ... ``` 外包裝。
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	} else {
		return cleaned
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
