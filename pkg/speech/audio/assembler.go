package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Assembler は出力ディレクトリのチャンク音声を番号順に並べ、1つの音声ファイルへ結合します。
type Assembler struct {
	concat MediaConcatenator
}

func NewAssembler(concat MediaConcatenator) *Assembler {
	return &Assembler{concat: concat}
}

// Assemble は runStamp に属するチャンク音声を結合し、dir/<finalName>.<ext> を出力します。
// 同名の既存出力は上書きされます。
func (a *Assembler) Assemble(ctx context.Context, dir, runStamp, finalName, ext string) (string, error) {
	inputs, err := FindChunkFiles(ctx, dir, runStamp, ext)
	if err != nil {
		return "", err
	}
	if len(inputs) == 0 {
		return "", &ErrNoChunksFound{Dir: dir, RunStamp: runStamp}
	}

	// 開始前にだけキャンセルを確認し、起動した ffmpeg は最後まで実行させる
	if err := ctx.Err(); err != nil {
		return "", err
	}

	output := filepath.Join(dir, finalName+"."+ext)
	slog.InfoContext(ctx, "チャンク音声の結合を開始します", "chunks", len(inputs), "output", output)

	err = a.concat.Concat(context.WithoutCancel(ctx), ConcatRequest{
		Inputs:   inputs,
		Output:   output,
		WorkDir:  dir,
		RunStamp: runStamp,
	})
	if err != nil {
		return "", fmt.Errorf("チャンク音声の結合に失敗しました: %w", err)
	}
	return output, nil
}

// FindChunkFiles は dir から runStamp・拡張子が一致するチャンク音声を辞書順 (= チャンク順) で返します。
// 別の実行の残骸と思われるチャンク音声は結合対象に含めず、警告を出します。
func FindChunkFiles(ctx context.Context, dir, runStamp, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("出力ディレクトリの読み込みに失敗しました (%s): %w", dir, err)
	}

	var (
		names []string
		stale []string
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := ParseChunkFileName(entry.Name())
		if !ok {
			continue
		}
		if info.RunStamp != runStamp || info.Ext != ext {
			stale = append(stale, entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}

	if len(stale) > 0 {
		slog.WarnContext(ctx, "以前の実行の一時ファイルが残っています。今回の結合には含めません。",
			"dir", dir,
			"count", len(stale),
			"files", stale)
	}

	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// NewConcatenator は結合方式の名前から MediaConcatenator を組み立てます。
// ffmpeg を使う方式では PATH 上の ffmpeg を解決します。
func NewConcatenator(strategy string, runner CommandRunner) (MediaConcatenator, error) {
	switch strategy {
	case StrategyWAV:
		return NewWAVConcatenator(), nil
	case "", StrategyDemuxer, StrategyFilter:
	default:
		return nil, fmt.Errorf("未対応の結合方式です: %q (%s, %s, %s)", strategy, StrategyDemuxer, StrategyFilter, StrategyWAV)
	}

	path, err := ResolveFFmpeg()
	if err != nil {
		return nil, err
	}
	if strategy == StrategyFilter {
		return NewFilterConcatenator(path, runner), nil
	}
	return NewDemuxerConcatenator(path, runner), nil
}
