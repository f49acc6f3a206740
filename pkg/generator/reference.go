package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/gemini-image-router/pkg/domain"
	"github.com/shouni/gemini-image-router/pkg/imgutil"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ReferenceLoader は参照画像のパスを読み込み、domain.ReferenceImage に変換します。
// ローカルパスに加え、gs:// と http(s):// も扱えます。
type ReferenceLoader struct {
	reader     remoteio.InputReader    // gs:// 用。nil の場合は非対応
	httpClient httpkit.ClientInterface // http(s):// 用。nil の場合は非対応
	maxPx      int
	quality    int
	logger     *slog.Logger
}

// NewReferenceLoader は ReferenceLoader を初期化します。
// maxPx が 0 の場合、読み込んだ画像は加工せずそのまま使います。
func NewReferenceLoader(reader remoteio.InputReader, httpClient httpkit.ClientInterface, maxPx, quality int, logger *slog.Logger) *ReferenceLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceLoader{
		reader:     reader,
		httpClient: httpClient,
		maxPx:      maxPx,
		quality:    quality,
		logger:     logger,
	}
}

// LoadAll は指定順を保ったまま参照画像を読み込みます。最初の失敗で中断します。
func (l *ReferenceLoader) LoadAll(ctx context.Context, paths []string) ([]domain.ReferenceImage, error) {
	refs := make([]domain.ReferenceImage, 0, len(paths))
	for _, p := range paths {
		ref, err := l.Load(ctx, p)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, nil
}

// Load は1枚の参照画像を読み込みます。MIME タイプは拡張子から決まります。
func (l *ReferenceLoader) Load(ctx context.Context, p string) (*domain.ReferenceImage, error) {
	data, err := l.read(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference image %s: %w", p, err)
	}

	ref := &domain.ReferenceImage{Data: data, MimeType: MimeTypeFromPath(p)}
	if l.maxPx <= 0 {
		return ref, nil
	}

	fits, err := imgutil.FitsWithin(data, l.maxPx)
	if err != nil {
		l.logger.WarnContext(ctx, "参照画像のサイズを判定できません。元データを使用します", "path", p, "error", err)
		return ref, nil
	}
	if fits {
		return ref, nil
	}

	compressed, err := imgutil.CompressToJPEG(data, l.quality, l.maxPx)
	if err != nil {
		l.logger.WarnContext(ctx, "参照画像の縮小に失敗しました。元データを使用します", "path", p, "error", err)
		return ref, nil
	}
	ref.Data = compressed
	ref.MimeType = mimeTypeJPEG
	return ref, nil
}

func (l *ReferenceLoader) read(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(p, "gs://"):
		if l.reader == nil {
			return nil, fmt.Errorf("no remote reader configured for %s", p)
		}
		return readRemote(ctx, l.reader, p)
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		if l.httpClient == nil {
			return nil, fmt.Errorf("no http client configured for %s", p)
		}
		safe, err := IsSafeURL(p)
		if err != nil {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
		}
		if !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %s", p)
		}
		return l.httpClient.FetchBytes(ctx, p)
	default:
		return os.ReadFile(p)
	}
}

func readRemote(ctx context.Context, reader remoteio.InputReader, uri string) ([]byte, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
