package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-router/pkg/config"
	"github.com/shouni/gemini-image-router/pkg/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Dispatcher はモデル名に応じて Imagen か Gemini のどちらかに生成を振り分けます。
type Dispatcher struct {
	cfg     *config.Config
	factory ClientFactory
	reader  remoteio.InputReader
	loader  *ReferenceLoader
	logger  *slog.Logger
}

// NewDispatcher は依存関係を注入して Dispatcher を初期化します。
// factory が nil の場合は cfg.BaseURL を使う GenAIFactory を既定とします。
// reader と httpClient は nil を許容し、その場合 gs:// と http(s):// の参照画像は扱えません。
func NewDispatcher(cfg *config.Config, factory ClientFactory, reader remoteio.InputReader, httpClient httpkit.ClientInterface, logger *slog.Logger) (*Dispatcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg is required")
	}
	if factory == nil {
		factory = NewGenAIFactory(cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		cfg:     cfg,
		factory: factory,
		reader:  reader,
		loader:  NewReferenceLoader(reader, httpClient, cfg.ReferenceMaxPx, cfg.ReferenceQuality, logger),
		logger:  logger,
	}, nil
}

// GenerateImage は画像を1枚生成して生のバイト列を返します。
// model が空の場合は設定の既定モデルを使います。生成側のエラーはそのまま返します。
func (d *Dispatcher) GenerateImage(ctx context.Context, prompt, model string, args domain.CLIArgs) ([]byte, error) {
	model = d.cfg.ResolveModel(model)

	gen, err := d.selectGenerator(ctx, model, args)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, prompt, args)
}

func (d *Dispatcher) selectGenerator(ctx context.Context, model string, args domain.CLIArgs) (ImageGenerator, error) {
	if IsImagenModel(model) {
		if args.HasReferenceImages() {
			d.logger.WarnContext(ctx, "Imagenモデルは参照画像に対応していません。参照画像は無視されます",
				"model", model, "ref_count", len(args.ReferenceImages))
		}
		return NewImagenGenerator(d.factory, d.reader, d.cfg.APIKey(), model, d.logger)
	}

	if args.HasReferenceImages() && !IsMultimodalModel(model) {
		d.logger.WarnContext(ctx, "このモデルでは参照画像が反映されない可能性があります",
			"model", model, "ref_count", len(args.ReferenceImages))
	}
	return NewGeminiGenerator(d.factory, d.loader, d.cfg.APIKey(), model, d.logger)
}
