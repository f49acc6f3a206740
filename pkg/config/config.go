package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// DefaultImageModel は GOOGLE_IMAGE_MODEL が未設定の場合に使うモデルです。
const DefaultImageModel = "gemini-3-pro-image-preview"

// Config はプロセス全体の設定です。起動時に一度だけ構築し、Dispatcher に渡します。
type Config struct {
	// ImageModel が空の場合は ResolveModel が DefaultImageModel を返します。
	ImageModel   string `env:"GOOGLE_IMAGE_MODEL"`
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	BaseURL      string `env:"GOOGLE_BASE_URL"`

	// ReferenceMaxPx が 0 より大きい場合、長辺がこれを超える参照画像を縮小します。
	ReferenceMaxPx   int `env:"GOOGLE_IMAGE_REFERENCE_MAX_PX" envDefault:"0"`
	ReferenceQuality int `env:"GOOGLE_IMAGE_REFERENCE_QUALITY" envDefault:"85"`
}

// Load は環境変数から Config を構築します。
// dotenvFiles が指定された場合は先に読み込みます（存在しないファイルは無視）。
func Load(dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom はプロセス環境の代わりに与えられたマップから Config を構築します。
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey は GOOGLE_API_KEY、GEMINI_API_KEY の順で最初に空でない値を返します。
func (c *Config) APIKey() string {
	for _, key := range []string{c.GoogleAPIKey, c.GeminiAPIKey} {
		if k := strings.TrimSpace(key); k != "" {
			return k
		}
	}
	return ""
}

// ResolveModel は model が空の場合に既定モデルを返します。
func (c *Config) ResolveModel(model string) string {
	if model != "" {
		return model
	}
	if c.ImageModel != "" {
		return c.ImageModel
	}
	return DefaultImageModel
}

// Validate は設定値の整合性を検証し、見つかったすべての問題をまとめて返します。
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.ReferenceMaxPx < 0 {
		result = multierror.Append(result, fmt.Errorf("GOOGLE_IMAGE_REFERENCE_MAX_PX must be >= 0, got %d", c.ReferenceMaxPx))
	}
	if c.ReferenceQuality < 1 || c.ReferenceQuality > 100 {
		result = multierror.Append(result, fmt.Errorf("GOOGLE_IMAGE_REFERENCE_QUALITY must be in 1..100, got %d", c.ReferenceQuality))
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		result = multierror.Append(result, fmt.Errorf("GOOGLE_BASE_URL must be an http(s) URL, got %q", c.BaseURL))
	}
	return result.ErrorOrNil()
}
