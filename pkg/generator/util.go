package generator

import (
	"fmt"
	"net"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-image-router/pkg/domain"
)

// SelectImageSize は Gemini 系リクエストの解像度ティアを決定します。
// 明示指定があればそのまま使い、なければ品質 "2k" を 2K、それ以外を 1K とします。
func SelectImageSize(args domain.CLIArgs) domain.ImageSize {
	if args.ImageSize != "" {
		return args.ImageSize
	}
	if args.Quality == domain.Quality2K {
		return domain.ImageSize2K
	}
	return domain.ImageSize1K
}

// BuildImageConfig は呼び出しごとの ImageConfig を組み立てます。
func BuildImageConfig(args domain.CLIArgs) domain.ImageConfig {
	return domain.ImageConfig{
		ImageSize:   SelectImageSize(args),
		AspectRatio: args.AspectRatio,
	}
}

// AugmentImagenPrompt は Imagen 向けにアスペクト比と高解像度の指示をプロンプト末尾へ追記します。
func AugmentImagenPrompt(prompt string, args domain.CLIArgs) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	if args.AspectRatio != "" {
		fmt.Fprintf(&sb, " Aspect ratio: %s.", args.AspectRatio)
	}
	if args.Quality == domain.Quality2K {
		sb.WriteString(imagenHighResolutionClause)
	}
	return sb.String()
}

// MimeTypeFromPath は拡張子から MIME タイプを推定します。内容の判定は行いません。
func MimeTypeFromPath(p string) string {
	var ext string
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		ext = path.Ext(u.Path)
	} else {
		ext = filepath.Ext(p)
	}

	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return mimeTypeJPEG
	case ".gif":
		return mimeTypeGIF
	case ".webp":
		return mimeTypeWebP
	default:
		return mimeTypePNG
	}
}

// IsSafeURL は SSRF 対策として URL を検証します。
// http/https のみを許可し、名前解決されたすべての IP がプライベート、
// ループバック、リンクローカルでないことを確認します。
func IsSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolved
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません: %s", host)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
