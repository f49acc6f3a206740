package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-router/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// ImagenGenerator は Imagen の text-to-image API で画像を生成します。参照画像は扱いません。
type ImagenGenerator struct {
	factory ClientFactory
	reader  remoteio.InputReader // gs:// で返された画像の取得用。nil 許容
	apiKey  string
	model   string
	logger  *slog.Logger
}

// NewImagenGenerator は ImagenGenerator を初期化します。
// apiKey は空でも構いません。必要な場合は SDK がエラーを返します。
func NewImagenGenerator(factory ClientFactory, reader remoteio.InputReader, apiKey, model string, logger *slog.Logger) (*ImagenGenerator, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (ClientFactory) is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImagenGenerator{
		factory: factory,
		reader:  reader,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
	}, nil
}

// Generate はプロンプトを補強して Imagen を呼び出し、最初の1枚を返します。
func (g *ImagenGenerator) Generate(ctx context.Context, prompt string, args domain.CLIArgs) ([]byte, error) {
	client, err := g.factory.NewImagesGenerator(ctx, g.apiKey)
	if err != nil {
		return nil, err
	}

	n := args.N
	if n <= 0 {
		n = defaultImageCount
	}
	finalPrompt := AugmentImagenPrompt(prompt, args)

	g.logger.InfoContext(ctx, "Imagen画像生成リクエスト送信中", "model", g.model, "n", n)

	resp, err := client.GenerateImages(ctx, g.model, finalPrompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(n),
	})
	if err != nil {
		return nil, err
	}

	data, err := g.extractImage(ctx, resp)
	if err != nil {
		return nil, err
	}
	g.logger.InfoContext(ctx, "Imagen画像生成完了", "model", g.model, "bytes", len(data))
	return data, nil
}

// extractImage は先頭の生成画像からバイト列を取り出します。
// ImageBytes を優先し、なければ GCS 上の出力を読み込みます。
// GCSURI が返るのは Vertex AI バックエンドで出力先を指定したクライアントを
// ClientFactory として注入した場合のみで、GenAIFactory の Gemini API 経路では常に ImageBytes です。
func (g *ImagenGenerator) extractImage(ctx context.Context, resp *genai.GenerateImagesResponse) ([]byte, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return nil, ErrNoImage
	}

	first := resp.GeneratedImages[0]
	if first.Image == nil {
		if first.RAIFilteredReason != "" {
			return nil, fmt.Errorf("%w (filtered: %s)", ErrImageExtraction, first.RAIFilteredReason)
		}
		return nil, ErrImageExtraction
	}

	if len(first.Image.ImageBytes) > 0 {
		return first.Image.ImageBytes, nil
	}

	if first.Image.GCSURI != "" && g.reader != nil {
		data, err := readRemote(ctx, g.reader, first.Image.GCSURI)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrImageExtraction, first.Image.GCSURI, err)
		}
		if len(data) > 0 {
			return data, nil
		}
	}

	return nil, ErrImageExtraction
}
