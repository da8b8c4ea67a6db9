package speech

// ----------------------------------------------------------------------
// パイプライン定数
// ----------------------------------------------------------------------

const (
	// 進捗表示に使うチャンク先頭の文字数
	PreviewLength = 60
	// 出力ディレクトリのパーミッション
	outputDirPerm = 0755
	// チャンク音声ファイルのパーミッション
	chunkFilePerm = 0644
)

// 音声合成APIのベースURLを上書きする環境変数
const envAPIURL = "OPENAI_BASE_URL"
