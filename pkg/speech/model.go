package speech

import (
	"context"
	"io"
	"log/slog"
)

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Executor は、テキストファイルを1つの音声ファイルへ変換するための契約を定義します。
// オプションの処理（例: 出力先の変更）は、Functional Options Patternを通じて提供されます。
type Executor interface {
	// Execute は入力ファイルを処理し、結合済み音声ファイルのパスを返します。
	Execute(ctx context.Context, inputPath string, opts ...ExecuteOption) (string, error)
}

// SpeechSynthesizer は1チャンク分のテキストを音声ストリームに変換します。
// api.Client がこれを満たします。
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, model, voice string) (io.ReadCloser, error)
}

// ChunkAssembler はチャンク音声を1つのファイルへ結合します。audio.Assembler がこれを満たします。
type ChunkAssembler interface {
	Assemble(ctx context.Context, dir, runStamp, finalName, ext string) (string, error)
}

// Observer はパイプラインの進捗を受け取ります。制御フローには影響しません。
type Observer interface {
	ChunkStarted(ev ChunkEvent)
	ChunkFinished(ev ChunkEvent)
	RunFailed(ev ChunkEvent, err error)
}

// ----------------------------------------------------------------------
// データモデル
// ----------------------------------------------------------------------

// ChunkEvent はチャンク単位の進捗イベントです。Path は ChunkFinished でのみ設定されます。
type ChunkEvent struct {
	Index   int
	Total   int
	Preview string
	Path    string
}

// ChunkAudioFile は1チャンク分の合成結果として保存されたファイルです。
type ChunkAudioFile struct {
	Index int
	Path  string
}

// RunContext は1回の実行で全コンポーネントに渡される読み取り専用のパラメータです。
type RunContext struct {
	OutputDir string
	Model     string
	Voice     string
	Format    string // 応答フォーマット兼ファイル拡張子
	APIKey    string
	RunStamp  string // Unix 秒。一時ファイル名に埋め込まれる
	RunID     string // ログ相関用の UUID
}

// LogValue は API キーを伏せた状態でログに出力します。
func (rc RunContext) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", rc.RunID),
		slog.String("run_stamp", rc.RunStamp),
		slog.String("output_dir", rc.OutputDir),
		slog.String("model", rc.Model),
		slog.String("voice", rc.Voice),
		slog.String("format", rc.Format),
	)
}

// NopObserver は何もしない Observer です。
type NopObserver struct{}

func (NopObserver) ChunkStarted(ChunkEvent)     {}
func (NopObserver) ChunkFinished(ChunkEvent)    {}
func (NopObserver) RunFailed(ChunkEvent, error) {}
