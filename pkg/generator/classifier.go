package generator

import (
	"strings"

	"github.com/samber/lo"
)

var (
	imagenModels     = []string{"imagen-3.0-generate-002", "imagen-4.0-generate-001"}
	multimodalModels = []string{"gemini-3-pro-image-preview"}
)

// IsImagenModel はモデル名が既知の Imagen モデル名を部分文字列として含むかを返します。
func IsImagenModel(model string) bool {
	return containsAny(model, imagenModels)
}

// IsMultimodalModel はモデル名が既知のマルチモーダルモデル名を含むかを返します。
func IsMultimodalModel(model string) bool {
	return containsAny(model, multimodalModels)
}

func containsAny(model string, names []string) bool {
	return lo.ContainsBy(names, func(name string) bool {
		return strings.Contains(model, name)
	})
}
