package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
	"github.com/shouni/go-text-to-speech/pkg/speech/parser"
)

type Engine struct {
	segmenter parser.Segmenter
	pipeline  *Pipeline
	assembler ChunkAssembler
	config    EngineConfig
	files     FileRemover
}

// EngineOption は Engine の任意設定です。
type EngineOption func(*Engine)

// WithFileRemover は後片付けで使うファイル削除の実装を差し替えます。
func WithFileRemover(files FileRemover) EngineOption {
	return func(e *Engine) {
		if files != nil {
			e.files = files
		}
	}
}

type EngineConfig struct {
	Model  string
	Voice  string
	Format string
	APIKey string
}

// ----------------------------------------------------------------------
// Executeメソッド用のオプション定義 (Functional Options Pattern)
// ----------------------------------------------------------------------

// ExecuteConfig は Execute メソッドの実行中に適用されるオプション設定を保持する
type ExecuteConfig struct {
	OutputDir         string // 空の場合はカレントディレクトリ直下の <入力ファイル名>
	RunStamp          string // 空の場合は現在時刻の Unix 秒
	KeepIntermediates bool
}

// ExecuteOption はオプションを適用するための関数シグネチャ
type ExecuteOption func(*ExecuteConfig)

func newExecuteConfig() *ExecuteConfig {
	return &ExecuteConfig{}
}

// WithOutputDir は出力ディレクトリを指定します。
func WithOutputDir(dir string) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		if dir != "" {
			cfg.OutputDir = dir
		}
	}
}

// WithRunStamp は一時ファイル名に埋め込む実行タイムスタンプを固定します。
func WithRunStamp(stamp string) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		if stamp != "" {
			cfg.RunStamp = stamp
		}
	}
}

// WithKeepIntermediates は結合後もチャンク音声とリストファイルを削除せずに残します。
func WithKeepIntermediates(keep bool) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		cfg.KeepIntermediates = keep
	}
}

// NewEngine は新しい Engine インスタンスを作成し、依存関係を注入します。
func NewEngine(segmenter parser.Segmenter, pipeline *Pipeline, assembler ChunkAssembler, config EngineConfig, opts ...EngineOption) *Engine {
	e := &Engine{
		segmenter: segmenter,
		pipeline:  pipeline,
		assembler: assembler,
		config:    config,
		files:     osFileRemover{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ----------------------------------------------------------------------
// メイン処理 (Execute メソッド)
// ----------------------------------------------------------------------

// Execute は入力ファイルを読み込み、分割・合成・結合・後片付けまでを順に実行します。
// 途中で失敗した場合、保存済みのチャンク音声は調査用に残します。
// 後片付けだけが失敗した場合は、結合済みファイルのパスとエラーの両方を返します。
func (e *Engine) Execute(ctx context.Context, inputPath string, opts ...ExecuteOption) (string, error) {
	// 1. デフォルト設定の初期化とオプションの適用
	cfg := newExecuteConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// 2. 入力の読み込みと分割
	baseName, chunks, err := loadChunks(inputPath, e.segmenter)
	if err != nil {
		return "", err
	}

	// 3. 実行コンテキストの構築
	rc := RunContext{
		OutputDir: cfg.OutputDir,
		Model:     e.config.Model,
		Voice:     e.config.Voice,
		Format:    e.config.Format,
		APIKey:    e.config.APIKey,
		RunStamp:  cfg.RunStamp,
		RunID:     uuid.NewString(),
	}
	if rc.OutputDir == "" {
		rc.OutputDir = filepath.Join(".", baseName)
	}
	if rc.RunStamp == "" {
		rc.RunStamp = strconv.FormatInt(time.Now().Unix(), 10)
	}

	warnLeftovers(ctx, rc.OutputDir)
	if err := os.MkdirAll(rc.OutputDir, outputDirPerm); err != nil {
		return "", &ErrFileIO{Op: "mkdir", Path: rc.OutputDir, WrappedErr: err}
	}

	// 4. チャンクごとの合成と保存
	if _, err := e.pipeline.Run(ctx, chunks, rc); err != nil {
		return "", err
	}

	// 5. 結合
	output, err := e.assembler.Assemble(ctx, rc.OutputDir, rc.RunStamp, baseName, rc.Format)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "音声ファイルの結合が完了しました", "output", output)

	// 6. 後片付け (失敗しても結合済みファイルは残す)
	if cfg.KeepIntermediates {
		slog.InfoContext(ctx, "一時ファイルを残します", "dir", rc.OutputDir)
		return output, nil
	}
	removed, err := cleanupWith(e.files, rc.OutputDir, rc.RunStamp)
	if err != nil {
		return output, err
	}
	slog.DebugContext(ctx, "一時ファイルを削除しました", "count", len(removed))

	return output, nil
}

// loadChunks は入力ファイルを読み込んでチャンクへ分割し、出力名に使うベース名と共に返します。
func loadChunks(inputPath string, segmenter parser.Segmenter) (string, []parser.Chunk, error) {
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if baseName == "" || baseName == "." || baseName == string(filepath.Separator) {
		return "", nil, &ErrInvalidInput{Details: fmt.Sprintf("入力ファイル名が不正です: %q", inputPath)}
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return "", nil, &ErrInvalidInput{Details: "入力ファイルを開けません", WrappedErr: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", nil, &ErrInvalidInput{Details: "入力ファイルの情報を取得できません", WrappedErr: err}
	}
	if info.IsDir() {
		return "", nil, &ErrInvalidInput{Details: fmt.Sprintf("%s はディレクトリです", inputPath)}
	}

	lines, err := parser.ReadLines(f)
	if err != nil {
		return "", nil, &ErrInvalidInput{Details: "入力ファイルを読み込めません", WrappedErr: err}
	}

	chunks := segmenter.Segment(lines)
	if len(chunks) == 0 {
		return "", nil, &ErrInvalidInput{Details: fmt.Sprintf("%s に合成するテキストがありません", inputPath)}
	}
	return baseName, chunks, nil
}

// warnLeftovers は出力ディレクトリに以前の実行のチャンク音声が残っている場合に警告します。
func warnLeftovers(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.WarnContext(ctx, "出力ディレクトリを確認できません", "dir", dir, "error", err)
		}
		return
	}
	count := 0
	for _, entry := range entries {
		if _, ok := audio.ParseChunkFileName(entry.Name()); ok {
			count++
		}
	}
	if count > 0 {
		slog.WarnContext(ctx, "出力ディレクトリに以前の実行の一時ファイルが残っています。今回の結合には含めません。",
			"dir", dir, "count", count)
	}
}
