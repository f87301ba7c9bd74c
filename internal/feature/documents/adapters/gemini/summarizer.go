// Package gemini はGoogle Gemini APIを使用した要約クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"legalai_backend/internal/feature/documents/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiSummarizer はGoogle Gemini APIを使用して要約を生成します。
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// GeminiSummarizerがSummarizerを実装していることをコンパイル時に検証します。
var _ usecase.Summarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer はADCを使用してGeminiSummarizerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// またはGEMINI_API_KEYが必要です。
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModel}, nil
}

// Summarize はプロンプトを含むテキストから要約を生成します。
func (g *GeminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
