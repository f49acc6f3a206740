package imgutil

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に再エンコードします。
// maxPx が 0 より大きく、長辺が maxPx を超える場合はアスペクト比を保って縮小します。
func CompressToJPEG(data []byte, quality, maxPx int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if maxPx > 0 {
		b := img.Bounds()
		if b.Dx() > maxPx || b.Dy() > maxPx {
			img = imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)
		}
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FitsWithin は画像の長辺が maxPx 以下かどうかをヘッダーのみから判定します。
func FitsWithin(data []byte, maxPx int) (bool, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false, err
	}
	return max(cfg.Width, cfg.Height) <= maxPx, nil
}
