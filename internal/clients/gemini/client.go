package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ytchapters/internal/models"
)

// Client 結構用於與 Gemini API 互動
type Client struct {
	model *genai.GenerativeModel
}

// NewClient 建立一個 Gemini 客戶端實例。
// 模型被設定為回傳 application/json，但呼叫端仍然必須把回應
// 當成未受信任的原始文字處理。
func NewClient(apiKey string, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API Key 不得為空")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash-lite"
		log.Printf("警告：[Gemini Client] 未提供模型名稱，使用預設值: %s\n", modelName)
	}

	ctx := context.Background()
	genaiSDKClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("無法建立 Gemini GenAI SDK 客戶端: %w", err)
	}

	model := genaiSDKClient.GenerativeModel(modelName)
	var genConfig genai.GenerationConfig
	genConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig = genConfig
	log.Printf("資訊：[Gemini Client] 章節生成模型 '%s' 初始化成功。\n", modelName)

	return &Client{model: model}, nil
}

// GenerateChapters 向 Gemini API 發送章節生成指令，回傳原始文字回應。
// 不在這裡解碼：回應一律交由 chapters.ParseResponse 嚴格驗證。
// API 呼叫失敗包裝為 models.ErrCollaboratorUnavailable。
// ctx 取消時（例如客戶端斷線）呼叫會被放棄，不會留下過期的結果。
func (c *Client) GenerateChapters(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("章節生成的 Prompt 不得為空")
	}
	log.Printf("資訊：[Gemini Client] GenerateChapters - 正在向 Gemini API 發送請求 (Prompt 長度: %d 字元)...\n", len(prompt))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API GenerateContent 失敗: %v: %w", err, models.ErrCollaboratorUnavailable)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API 回應無效或為空 (nil response or no candidates): %w", models.ErrCollaboratorUnavailable)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != genai.FinishReasonUnspecified {
			for _, rating := range candidate.SafetyRatings {
				log.Printf("警告：[Gemini Client] 安全評級 - Category: %s, Probability: %s\n", rating.Category, rating.Probability)
			}
			return "", fmt.Errorf("Gemini API 回應內容被阻止，原因: %s: %w", candidate.FinishReason.String(), models.ErrCollaboratorUnavailable)
		}
		return "", fmt.Errorf("Gemini API 回應無內容 (FinishReason: %s): %w", candidate.FinishReason.String(), models.ErrCollaboratorUnavailable)
	}

	var responseTextBuilder strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseTextBuilder.WriteString(string(txt))
		} else {
			log.Printf("警告：[Gemini Client] GenerateChapters - 收到非預期的 Part 類型: %T\n", part)
		}
	}
	rawResponse := responseTextBuilder.String()
	if strings.TrimSpace(rawResponse) == "" {
		return "", fmt.Errorf("Gemini API 回傳的文字內容為空: %w", models.ErrCollaboratorUnavailable)
	}
	log.Printf("資訊：[Gemini Client] GenerateChapters - 收到 API 的原始文字回應 (長度: %d)。\n", len(rawResponse))
	return rawResponse, nil
}
