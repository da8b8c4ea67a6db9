package speech

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-text-to-speech/pkg/speech/parser"
)

// Pipeline はチャンクを1つずつ順番に合成・保存します。
// チャンク i の音声が保存し終わるまで、チャンク i+1 のリクエストは送りません。
type Pipeline struct {
	synth    SpeechSynthesizer
	observer Observer
	limiter  *rate.Limiter
}

type PipelineConfig struct {
	// RequestInterval はリクエスト間の最小間隔です。0 の場合は間隔を空けません。
	RequestInterval time.Duration
}

// NewPipeline は新しい Pipeline を作成します。observer が nil の場合は NopObserver を使います。
func NewPipeline(synth SpeechSynthesizer, observer Observer, config PipelineConfig) *Pipeline {
	if observer == nil {
		observer = NopObserver{}
	}

	var limiter *rate.Limiter
	if config.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(config.RequestInterval), 1)
	}

	return &Pipeline{
		synth:    synth,
		observer: observer,
		limiter:  limiter,
	}
}

// Run は全チャンクを順番に処理します。最初のエラーで残りのチャンクを中止し、
// 保存済みのチャンク音声は削除せずに残したまま、原因を ErrChunkFailed で包んで返します。
func (p *Pipeline) Run(ctx context.Context, chunks []parser.Chunk, rc RunContext) ([]ChunkAudioFile, error) {
	total := len(chunks)
	files := make([]ChunkAudioFile, 0, total)

	slog.InfoContext(ctx, "音声合成処理開始", "run", rc, "total_chunks", total)

	for i, chunk := range chunks {
		text := chunk.Text()
		ev := ChunkEvent{Index: i, Total: total, Preview: Preview(text)}

		// チャンク間でのみキャンセルとリクエスト間隔を確認する
		if err := p.wait(ctx); err != nil {
			return files, p.fail(ctx, ev, err)
		}

		p.observer.ChunkStarted(ev)

		path, err := p.processChunk(ctx, i, text, rc)
		if err != nil {
			return files, p.fail(ctx, ev, err)
		}

		ev.Path = path
		p.observer.ChunkFinished(ev)
		files = append(files, ChunkAudioFile{Index: i, Path: path})

		slog.DebugContext(ctx, "チャンク音声を保存しました", "chunk", i+1, "total", total, "path", path)
	}

	slog.InfoContext(ctx, "全てのチャンクの音声合成が完了しました", "run_id", rc.RunID, "files", len(files))
	return files, nil
}

// processChunk は1チャンク分のリクエストと保存を行います。
// 実行中のリクエストは中断しない。キャンセルはチャンクの合間 (wait) でのみ確認する。
func (p *Pipeline) processChunk(ctx context.Context, index int, text string, rc RunContext) (string, error) {
	stream, err := p.synth.Synthesize(context.WithoutCancel(ctx), text, rc.Model, rc.Voice)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	return Persist(stream, rc.OutputDir, rc.RunStamp, index, rc.Format)
}

func (p *Pipeline) wait(ctx context.Context) error {
	if p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

func (p *Pipeline) fail(ctx context.Context, ev ChunkEvent, cause error) error {
	p.observer.RunFailed(ev, cause)
	slog.ErrorContext(ctx, "チャンクの処理に失敗したため中断します",
		"chunk", ev.Index+1,
		"total", ev.Total,
		"preview", ev.Preview,
		"error", cause)
	return &ErrChunkFailed{Index: ev.Index, Total: ev.Total, Preview: ev.Preview, WrappedErr: cause}
}

// Preview はテキストの先頭 PreviewLength 文字を返します。
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength])
}
