package domain

// Quality は CLI から渡される品質指定です。
type Quality string

// ImageSize は Gemini 系モデルに要求する解像度ティアです。
type ImageSize string

const (
	// Quality2K は高解像度を要求する品質センチネルです。
	Quality2K Quality = "2k"

	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// CLIArgs は外部の CLI パーサーから受け取る、解析済みの生成オプションです。
// このパッケージでは読み取り専用として扱います。
type CLIArgs struct {
	ReferenceImages []string  // 参照画像のパス（指定順を保持）
	AspectRatio     string    // 例: "16:9"。空なら未指定
	Quality         Quality   // 空なら未指定
	ImageSize       ImageSize // 空なら Quality から決定
	N               int       // 要求枚数
}

// HasReferenceImages は参照画像が1枚以上指定されているかを返します。
func (a CLIArgs) HasReferenceImages() bool {
	return len(a.ReferenceImages) > 0
}

// ImageConfig は1回の呼び出しごとに組み立てる生成設定です。
type ImageConfig struct {
	ImageSize   ImageSize
	AspectRatio string // 空の場合はリクエストに含めない
}

// ReferenceImage はパスから読み込んだ参照画像です。
// Data は生のバイト列で、送信時の base64 エンコードは SDK が行います。
type ReferenceImage struct {
	Data     []byte
	MimeType string
}
