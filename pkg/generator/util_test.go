package generator

import (
	"testing"

	"github.com/shouni/gemini-image-router/pkg/domain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSelectImageSize(t *testing.T) {
	tests := []struct {
		name string
		args domain.CLIArgs
		want domain.ImageSize
	}{
		{"未指定は1K", domain.CLIArgs{}, domain.ImageSize1K},
		{"品質2kは2K", domain.CLIArgs{Quality: domain.Quality2K}, domain.ImageSize2K},
		{"その他の品質は1K", domain.CLIArgs{Quality: "normal"}, domain.ImageSize1K},
		{"明示指定4Kが優先", domain.CLIArgs{Quality: domain.Quality2K, ImageSize: domain.ImageSize4K}, domain.ImageSize4K},
		{"明示指定1Kが優先", domain.CLIArgs{Quality: domain.Quality2K, ImageSize: domain.ImageSize1K}, domain.ImageSize1K},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectImageSize(tt.args))
		})
	}
}

func TestSelectImageSize_ExplicitAlwaysWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.SampledFrom([]domain.ImageSize{domain.ImageSize1K, domain.ImageSize2K, domain.ImageSize4K}).Draw(rt, "size")
		quality := domain.Quality(rapid.SampledFrom([]string{"", "2k", "standard", "hd"}).Draw(rt, "quality"))

		got := SelectImageSize(domain.CLIArgs{ImageSize: size, Quality: quality})
		if got != size {
			rt.Fatalf("explicit size %s should win over quality %q, got %s", size, quality, got)
		}
	})
}

func TestBuildImageConfig(t *testing.T) {
	cfg := BuildImageConfig(domain.CLIArgs{AspectRatio: "3:4", Quality: domain.Quality2K})
	assert.Equal(t, domain.ImageConfig{ImageSize: domain.ImageSize2K, AspectRatio: "3:4"}, cfg)

	cfg = BuildImageConfig(domain.CLIArgs{})
	assert.Empty(t, cfg.AspectRatio)
}

func TestAugmentImagenPrompt(t *testing.T) {
	tests := []struct {
		name string
		args domain.CLIArgs
		want string
	}{
		{"追記なし", domain.CLIArgs{}, "a cat"},
		{"アスペクト比のみ", domain.CLIArgs{AspectRatio: "16:9"}, "a cat Aspect ratio: 16:9."},
		{"高解像度のみ", domain.CLIArgs{Quality: domain.Quality2K}, "a cat High resolution 2048px."},
		{"両方（アスペクト比が先）", domain.CLIArgs{AspectRatio: "16:9", Quality: domain.Quality2K}, "a cat Aspect ratio: 16:9. High resolution 2048px."},
		{"2k以外の品質は無視", domain.CLIArgs{Quality: "hd"}, "a cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AugmentImagenPrompt("a cat", tt.args))
		})
	}
}

func TestMimeTypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"ref.jpg", "image/jpeg"},
		{"dir/REF.JPEG", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"photo.webp", "image/webp"},
		{"image.png", "image/png"},
		{"image.bmp", "image/png"},
		{"no-extension", "image/png"},
		{"gs://bucket/refs/face.jpg", "image/jpeg"},
		{"https://example.com/a.webp?sig=abc.png", "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MimeTypeFromPath(tt.path))
		})
	}
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"パブリックIP", "https://8.8.8.8/favicon.ico", false},

		{"GCSスキーム", "gs://my-bucket/path/to/image.png", true},
		{"不正なスキーム", "gopher://example.com", true},
		{"ループバック", "http://127.0.0.1/admin", true},
		{"IPv6ループバック", "http://[::1]/admin", true},
		{"プライベートIP (クラスA)", "http://10.255.255.254/metadata", true},
		{"リンクローカル", "http://169.254.169.254/latest/meta-data", true},
		{"パース不能", "::not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, err := IsSafeURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, safe)
				return
			}
			assert.NoError(t, err)
			assert.True(t, safe)
		})
	}
}
