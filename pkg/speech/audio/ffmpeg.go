package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// ConcatRequest は1回の結合処理の入力です。Inputs は結合順に並んでいる必要があります。
type ConcatRequest struct {
	Inputs   []string
	Output   string
	WorkDir  string // リストファイルなどの一時ファイルを置くディレクトリ
	RunStamp string
}

// MediaConcatenator は同一コーデックの音声ファイル群を1つに結合します。
type MediaConcatenator interface {
	Concat(ctx context.Context, req ConcatRequest) error
}

// CommandRunner は外部コマンドを実行し、標準エラー出力を返します。
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

// execRunner は os/exec による CommandRunner の実装です。
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// ResolveFFmpeg は PATH から ffmpeg の実行ファイルを探します。
func ResolveFFmpeg() (string, error) {
	path, err := exec.LookPath(DefaultFFmpegName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	return path, nil
}

// ----------------------------------------------------------------------
// ffmpeg 共通
// ----------------------------------------------------------------------

type ffmpeg struct {
	path   string
	runner CommandRunner
}

func newFFmpeg(path string, runner CommandRunner) ffmpeg {
	if path == "" {
		path = DefaultFFmpegName
	}
	if runner == nil {
		runner = execRunner{}
	}
	return ffmpeg{path: path, runner: runner}
}

// run は ffmpeg を実行し、失敗を ErrExternalTool に変換します。
func (f ffmpeg) run(ctx context.Context, args []string) error {
	slog.DebugContext(ctx, "ffmpeg を実行します", "path", f.path, "args", strings.Join(args, " "))

	stderr, err := f.runner.Run(ctx, f.path, args...)
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &ErrExternalTool{
		Tool:       filepath.Base(f.path),
		ExitCode:   exitCode,
		Stderr:     strings.TrimSpace(string(stderr)),
		WrappedErr: err,
	}
}

// ----------------------------------------------------------------------
// concat demuxer 方式
// ----------------------------------------------------------------------

// DemuxerConcatenator はリストファイルを作成し、ffmpeg の concat demuxer で無劣化結合します。
type DemuxerConcatenator struct {
	ffmpeg
}

func NewDemuxerConcatenator(ffmpegPath string, runner CommandRunner) *DemuxerConcatenator {
	return &DemuxerConcatenator{ffmpeg: newFFmpeg(ffmpegPath, runner)}
}

func (d *DemuxerConcatenator) Concat(ctx context.Context, req ConcatRequest) error {
	listPath := filepath.Join(req.WorkDir, ListFileName(req.RunStamp))
	if err := writeListFile(listPath, req.Inputs); err != nil {
		return err
	}

	args := []string{
		"-hide_banner", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		req.Output,
	}
	return d.run(ctx, args)
}

// writeListFile は "file '<path>'" 形式の行を結合順に書き出します。
func writeListFile(listPath string, inputs []string) error {
	var b strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("入力ファイルの絶対パス変換に失敗しました (%s): %w", in, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", escapeListPath(abs))
	}

	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("リストファイルの作成に失敗しました (%s): %w", listPath, err)
	}
	return nil
}

// escapeListPath は concat リスト内の単一引用符をエスケープします ('\'')。
func escapeListPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

// ----------------------------------------------------------------------
// filter-graph concat 方式
// ----------------------------------------------------------------------

// FilterConcatenator は全入力を個別の -i で渡し、concat フィルタで N 本の音声を1本にまとめます。
type FilterConcatenator struct {
	ffmpeg
}

func NewFilterConcatenator(ffmpegPath string, runner CommandRunner) *FilterConcatenator {
	return &FilterConcatenator{ffmpeg: newFFmpeg(ffmpegPath, runner)}
}

func (f *FilterConcatenator) Concat(ctx context.Context, req ConcatRequest) error {
	args := []string{"-hide_banner", "-y"}
	var graph strings.Builder
	for i, in := range req.Inputs {
		args = append(args, "-i", in)
		fmt.Fprintf(&graph, "[%d:a]", i)
	}
	fmt.Fprintf(&graph, "concat=n=%d:v=0:a=1[out]", len(req.Inputs))

	args = append(args,
		"-filter_complex", graph.String(),
		"-map", "[out]",
		req.Output,
	)
	return f.run(ctx, args)
}
