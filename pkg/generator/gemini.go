package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-image-router/pkg/domain"
	"google.golang.org/genai"
)

// GeminiGenerator はプロンプトと参照画像を受け付けるマルチモーダルモデルで1枚の画像を生成します。
type GeminiGenerator struct {
	factory ClientFactory
	loader  *ReferenceLoader
	apiKey  string
	model   string
	logger  *slog.Logger
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
// apiKey の有無はここでは検証せず、Generate 時に確認します。
func NewGeminiGenerator(factory ClientFactory, loader *ReferenceLoader, apiKey, model string, logger *slog.Logger) (*GeminiGenerator, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (ClientFactory) is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("loader (ReferenceLoader) is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiGenerator{
		factory: factory,
		loader:  loader,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
	}, nil
}

// Generate は参照画像、プロンプトの順でパーツを組み立てて画像を1枚生成します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, args domain.CLIArgs) ([]byte, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	refs, err := g.loader.LoadAll(ctx, args.ReferenceImages)
	if err != nil {
		return nil, err
	}
	parts := buildParts(prompt, refs)
	imgCfg := BuildImageConfig(args)

	client, err := g.factory.NewContentGenerator(ctx, g.apiKey)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Gemini画像生成リクエスト送信中",
		"model", g.model,
		"ref_count", len(refs),
		"image_size", imgCfg.ImageSize,
		"aspect_ratio", imgCfg.AspectRatio,
	)

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := client.GenerateContent(ctx, g.model, contents, buildContentConfig(imgCfg))
	if err != nil {
		return nil, err
	}

	data, err := extractInlineImage(resp)
	if err != nil {
		return nil, err
	}
	g.logger.InfoContext(ctx, "Gemini画像生成完了", "model", g.model, "bytes", len(data))
	return data, nil
}

func buildParts(prompt string, refs []domain.ReferenceImage) []*genai.Part {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: ref.MimeType, Data: ref.Data},
		})
	}
	return append(parts, &genai.Part{Text: prompt})
}

func buildContentConfig(imgCfg domain.ImageConfig) *genai.GenerateContentConfig {
	ic := &genai.ImageConfig{ImageSize: string(imgCfg.ImageSize)}
	if imgCfg.AspectRatio != "" {
		ic.AspectRatio = imgCfg.AspectRatio
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
		ImageConfig:        ic,
	}
}

// extractInlineImage は応答を順に走査し、データを持つ最初の画像パーツを返します。
func extractInlineImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoImage
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			if mt := part.InlineData.MIMEType; mt != "" && !strings.HasPrefix(mt, "image/") {
				continue
			}
			return part.InlineData.Data, nil
		}
	}

	// 安全フィルター等によるブロック
	if first := resp.Candidates[0]; first != nil {
		if reason := first.FinishReason; reason != "" && reason != genai.FinishReasonUnspecified && reason != genai.FinishReasonStop {
			return nil, fmt.Errorf("%w (FinishReason: %s)", ErrNoImage, reason)
		}
	}
	return nil, ErrNoImage
}
