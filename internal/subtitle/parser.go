package subtitle

import (
	"strings"
)

// Cue 是原始字幕文件中的一個字幕單位：一段時間範圍加上一行文字。
// TimeRange 保留來源檔的原始寫法（例如 "00:00:01.000 --> 00:00:03.000"），
// 不解析成數值偏移；Text 保證非空。
type Cue struct {
	TimeRange string
	Text      string
}

// ParseCues 逐行掃描 WebVTT 或 SRT 形式的字幕文件，回傳依出現順序排列的
// cue 序列。狀態機只有兩個狀態：等待時間範圍、已有待用時間範圍。
//
// 規則：
//   - 純數字行是 SRT 的序號，不帶資訊，直接丟棄。
//   - 含 "-->" 的行原樣存為待用時間範圍；若前一個時間範圍還沒配到文字，
//     該範圍直接丟棄（不會產生空文字的 cue）。
//   - 有待用時間範圍時遇到的第一個非空白行就是該 cue 的文字：內部連續
//     空白折疊成單一空格、去除頭尾空白後發出 cue，狀態回到等待。
//     同一個 cue 的後續換行文字一律忽略——這是刻意選定並在此記錄的策略，
//     自動字幕的滾動重複行大多因此被濾掉。
//   - 空白行只是分隔符。
//
// 文件中完全沒有 "-->" 時回傳空序列而非錯誤，表示「沒有找到字幕」，
// 呼叫端應視為該語言沒有可用字幕。
func ParseCues(document string) []Cue {
	if document == "" {
		return nil
	}

	var cues []Cue
	var pendingRange string

	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}
		if isDigitsOnly(line) {
			continue
		}
		if strings.Contains(line, "-->") {
			// 尚未配到文字的舊範圍在此被覆蓋丟棄
			pendingRange = line
			continue
		}
		if pendingRange != "" {
			cues = append(cues, Cue{
				TimeRange: pendingRange,
				Text:      collapseWhitespace(line),
			})
			pendingRange = ""
		}
	}
	// 檔尾殘留的無文字時間範圍不發出

	return cues
}

// collapseWhitespace 把內部連續空白折疊成單一空格並去除頭尾空白。
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isDigitsOnly 判斷一行是否只由數字組成（SRT 序號行）。
func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
