package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// --verbose で Debug に切り替えるため、レベルは実行時に変更可能にしておく
var logLevel = new(slog.LevelVar)

func main() {
	// ログ設定
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Ctrl+C で実行中のリクエストを中断する
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("音声合成の実行に失敗しました。", "error", err)
		stop()
		os.Exit(1)
	}
}
