package speech

import (
	"context"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/shouni/go-text-to-speech/pkg/speech/api"
	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
	"github.com/shouni/go-text-to-speech/pkg/speech/parser"
	"github.com/shouni/go-text-to-speech/pkg/speech/speaker"
)

// コンパイル時のインターフェース実装チェック
var (
	_ SpeechSynthesizer = (*api.Client)(nil)
	_ ChunkAssembler    = (*audio.Assembler)(nil)
	_ Executor          = (*Engine)(nil)
	_ Executor          = (*planExecutor)(nil)
)

// Config は Executor の組み立てに必要な設定です。
type Config struct {
	APIKey          string
	APIURL          string // 空の場合は環境変数 OPENAI_BASE_URL、それも無ければ api.DefaultAPIURL
	Model           string
	Voice           string
	Format          string
	Tokenizer       string
	TokenBudget     int
	ConcatStrategy  string
	RequestInterval time.Duration
	DryRun          bool
	Observer        Observer
}

// ----------------------------------------------------------------------
// Dry-run パターン
// ----------------------------------------------------------------------

// planExecutor は分割結果をログに出すだけで、APIも ffmpeg も呼び出しません。
type planExecutor struct {
	segmenter parser.Segmenter
}

// Execute はチャンクの一覧を出力します。戻り値のパスは常に空です。
func (p *planExecutor) Execute(ctx context.Context, inputPath string, opts ...ExecuteOption) (string, error) {
	_, chunks, err := loadChunks(inputPath, p.segmenter)
	if err != nil {
		return "", err
	}

	for _, chunk := range chunks {
		text := chunk.Text()
		chars := utf8.RuneCountInString(text)
		attrs := []any{
			"chunk", chunk.Index + 1,
			"total", len(chunks),
			"lines", len(chunk.Lines),
			"tokens", chunk.TokenCount,
			"chars", chars,
			"preview", Preview(text),
		}
		if chars > api.MaxInputChars {
			slog.WarnContext(ctx, "このチャンクは文字数上限を超えるため、実行時に失敗します", append(attrs, "limit", api.MaxInputChars)...)
			continue
		}
		slog.InfoContext(ctx, "チャンク", attrs...)
	}
	slog.InfoContext(ctx, "dry-run のため音声合成はスキップされました。", "chunks", len(chunks))
	return "", nil
}

// ----------------------------------------------------------------------
// Factory 関数
// ----------------------------------------------------------------------

// NewExecutor は、設定を検証し、API クライアント・分割器・結合器を組み立てて
// Executor インターフェースを実装した具象型を返します。
func NewExecutor(ctx context.Context, cfg Config) (Executor, error) {
	// 1. 設定値の検証
	if err := speaker.ValidateModel(cfg.Model); err != nil {
		return nil, &ErrInvalidInput{Details: "モデル", WrappedErr: err}
	}
	if err := speaker.ValidateVoice(cfg.Voice); err != nil {
		return nil, &ErrInvalidInput{Details: "ボイス", WrappedErr: err}
	}
	if err := speaker.ValidateFormat(cfg.Format); err != nil {
		return nil, &ErrInvalidInput{Details: "フォーマット", WrappedErr: err}
	}
	if cfg.ConcatStrategy == audio.StrategyWAV && cfg.Format != audio.StrategyWAV {
		return nil, &ErrInvalidInput{Details: "wav 結合方式は --format wav の場合のみ使用できます"}
	}

	// 2. 分割器
	counter, err := parser.NewTokenCounter(cfg.Tokenizer)
	if err != nil {
		return nil, &ErrInvalidInput{Details: "トークナイザ", WrappedErr: err}
	}
	segmenter := parser.NewSegmenter(counter, cfg.TokenBudget)

	if cfg.DryRun {
		slog.InfoContext(ctx, "dry-run モードです。分割結果のみを表示します。", "tokenizer", cfg.Tokenizer, "budget", cfg.TokenBudget)
		return &planExecutor{segmenter: segmenter}, nil
	}

	// 3. 認証情報と API URL
	if cfg.APIKey == "" {
		return nil, &ErrInvalidInput{Details: "APIキーが指定されていません (--apikey または OPENAI_API_KEY)"}
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = os.Getenv(envAPIURL)
	}
	if apiURL == "" {
		apiURL = api.DefaultAPIURL
	} else {
		slog.InfoContext(ctx, "音声合成APIのURLを上書きします", "url", apiURL)
	}

	client := api.NewClient(cfg.APIKey, apiURL, api.WithResponseFormat(cfg.Format))

	// 4. 結合器 (ffmpeg 方式は PATH 上の ffmpeg を事前に確認する)
	concat, err := audio.NewConcatenator(cfg.ConcatStrategy, nil)
	if err != nil {
		return nil, &ErrInvalidInput{Details: "結合ツール", WrappedErr: err}
	}

	// 5. Engineの組み立て
	pipeline := NewPipeline(client, cfg.Observer, PipelineConfig{RequestInterval: cfg.RequestInterval})
	engine := NewEngine(segmenter, pipeline, audio.NewAssembler(concat), EngineConfig{
		Model:  cfg.Model,
		Voice:  cfg.Voice,
		Format: client.Format(),
		APIKey: cfg.APIKey,
	})

	slog.DebugContext(ctx, "Executorの初期化が完了しました。",
		"model", cfg.Model,
		"voice", cfg.Voice,
		"format", client.Format(),
		"concat", cfg.ConcatStrategy,
		"request_interval", cfg.RequestInterval.String())

	return engine, nil
}
