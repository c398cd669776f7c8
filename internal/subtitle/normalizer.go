package subtitle

import (
	"strings"
)

// Normalize 把 cue 序列整理成單一逐字稿字串：每個 cue 以
// "<時間範圍>\n<文字>" 的區塊呈現，區塊之間以一個空白行分隔，
// 順序與來源相同。保留粗粒度的時間脈絡給章節生成步驟使用，
// 同時消除字幕逐行換行造成的碎片。對同一序列重複呼叫的輸出
// 逐位元組相同。
func Normalize(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(cues))
	for _, cue := range cues {
		if cue.Text == "" {
			continue
		}
		blocks = append(blocks, cue.TimeRange+"\n"+cue.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// PlainText 把所有 cue 文字以單一空格串接成不含時間戳的純文字。
// 提供給不需要時間脈絡的下游使用。
func PlainText(cues []Cue) string {
	texts := make([]string, 0, len(cues))
	for _, cue := range cues {
		if cue.Text == "" {
			continue
		}
		texts = append(texts, cue.Text)
	}
	return collapseWhitespace(strings.Join(texts, " "))
}
