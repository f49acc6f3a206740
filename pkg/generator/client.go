package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIFactory は google.golang.org/genai のクライアントを Gemini API バックエンドで構築します。
type GenAIFactory struct {
	BaseURL string // 空の場合は SDK の既定エンドポイント
}

// NewGenAIFactory は GenAIFactory を生成します。
func NewGenAIFactory(baseURL string) *GenAIFactory {
	return &GenAIFactory{BaseURL: baseURL}
}

// NewContentGenerator はマルチモーダル生成用のクライアントを返します。
func (f *GenAIFactory) NewContentGenerator(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := f.newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// NewImagesGenerator は Imagen 用のクライアントを返します。
func (f *GenAIFactory) NewImagesGenerator(ctx context.Context, apiKey string) (ImagesGenerator, error) {
	client, err := f.newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (f *GenAIFactory) newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if f.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: f.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}
