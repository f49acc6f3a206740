package generator

import (
	"context"

	"github.com/shouni/gemini-image-router/pkg/domain"
	"google.golang.org/genai"
)

// ImageGenerator は2つのプロバイダ実装が共有する画像生成の窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, args domain.CLIArgs) ([]byte, error)
}

// ContentGenerator はマルチモーダル生成 API の呼び出しを抽象化します。
// *genai.Models がこのインターフェースを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImagesGenerator は Imagen の text-to-image API の呼び出しを抽象化します。
// *genai.Models がこのインターフェースを満たします。
type ImagesGenerator interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ClientFactory は呼び出しごとにプロバイダクライアントを構築します。
type ClientFactory interface {
	NewContentGenerator(ctx context.Context, apiKey string) (ContentGenerator, error)
	NewImagesGenerator(ctx context.Context, apiKey string) (ImagesGenerator, error)
}
