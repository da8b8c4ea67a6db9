package audio

// ----------------------------------------------------------------------
// WAV ファイル定数 (動的チャンク探索ベースに統一)
// ----------------------------------------------------------------------

const (
	// RIFF 構造の必須サイズ定数
	RiffChunkIDSize   = 4 // "RIFF" チャンクIDのサイズ
	RiffChunkSizeSize = 4 // ファイルサイズフィールドのサイズ
	WaveIDSize        = 4 // "WAVE" 識別子のサイズ

	// サブチャンク (fmt, data, LIST ...) のヘッダーサイズ定数
	ChunkIDSize     = 4
	ChunkSizeSize   = 4
	ChunkHeaderSize = ChunkIDSize + ChunkSizeSize // 8バイト
)

const (
	WavRiffHeaderSize = RiffChunkIDSize + RiffChunkSizeSize + WaveIDSize // RIFFヘッダーの合計サイズ (12バイト)
	// ストリーミング出力の WAV はサイズ欄にこの値を入れてくる
	unknownChunkSize = 0xFFFFFFFF
)

// ----------------------------------------------------------------------
// 一時ファイル命名
// ----------------------------------------------------------------------

const (
	// チャンク音声と結合リストの共通プレフィックス
	TempFilePrefix = "tmp_"
	// ゼロ埋め6桁で表現できる最大のチャンク番号
	MaxChunkIndex = 999999
)

// ----------------------------------------------------------------------
// 外部ツール
// ----------------------------------------------------------------------

const (
	DefaultFFmpegName = "ffmpeg"

	StrategyDemuxer = "demuxer"
	StrategyFilter  = "filter"
	StrategyWAV     = "wav"
)
