package generator

import "errors"

const (
	mimeTypePNG  = "image/png"
	mimeTypeJPEG = "image/jpeg"
	mimeTypeGIF  = "image/gif"
	mimeTypeWebP = "image/webp"

	imagenHighResolutionClause = " High resolution 2048px."
	defaultImageCount          = 1
)

var (
	// ErrMissingAPIKey は GOOGLE_API_KEY と GEMINI_API_KEY のどちらも設定されていない場合のエラーです。
	ErrMissingAPIKey = errors.New("GOOGLE_API_KEY or GEMINI_API_KEY is required")
	// ErrNoImage はプロバイダの応答に画像が含まれていない場合のエラーです。
	ErrNoImage = errors.New("no image in response")
	// ErrImageExtraction は画像エントリから既知の形式でデータを取り出せない場合のエラーです。
	ErrImageExtraction = errors.New("cannot extract image data")
)
