package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shouni/go-text-to-speech/pkg/speech"
)

// コンソールの強調表示 (緑)
var highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text2speech <input_file>",
		Short: "テキストファイルを1つの音声ファイルに変換します",
		Long: `テキストファイルを行単位でトークン上限ごとのチャンクに分割し、
OpenAI の音声合成APIでチャンクごとに音声化したあと、ffmpeg で1つのファイルに結合します。
出力先はカレントディレクトリ直下の <入力ファイル名 (拡張子なし)> ディレクトリです。`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, viper.New())
			if err != nil {
				return err
			}
			if cfg.Verbose {
				logLevel.Set(slog.LevelDebug)
			}
			return runSynthesis(cmd.Context(), cmd, args[0], cfg)
		},
	}
	registerFlags(cmd)
	return cmd
}

// runSynthesis は Executor を組み立てて1回分の変換を実行します。
// 後片付けだけが失敗した場合も、生成済みの出力ファイルは表示してからエラーを返します。
func runSynthesis(ctx context.Context, cmd *cobra.Command, inputPath string, cfg appConfig) error {
	observer := newProgressObserver(cmd.ErrOrStderr())

	executor, err := speech.NewExecutor(ctx, cfg.speechConfig(observer))
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "音声合成処理を開始します。", "input", inputPath, "model", cfg.Model, "voice", cfg.Voice)

	output, err := executor.Execute(ctx, inputPath, speech.WithKeepIntermediates(cfg.Keep))
	if output != "" {
		absPath, absErr := filepath.Abs(output)
		if absErr != nil {
			absPath = output
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ 音声ファイル: %s\n", highlight.Render(absPath))
	}
	if err != nil {
		var fileErr *speech.ErrFileIO
		if output != "" && errors.As(err, &fileErr) {
			slog.WarnContext(ctx, "出力は生成されましたが、一時ファイルの削除に失敗しました。", "output", output)
		}
		return err
	}
	return nil
}
