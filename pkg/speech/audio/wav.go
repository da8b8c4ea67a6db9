package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
)

// ----------------------------------------------------------------------
// WAV のプロセス内結合 (外部ツール不要)
// ----------------------------------------------------------------------

// WAVConcatenator は WAV ファイル群を ffmpeg を使わずに結合します。
// 全入力の fmt チャンクが一致している (同一コーデック・同一サンプリング) 必要があります。
type WAVConcatenator struct{}

func NewWAVConcatenator() *WAVConcatenator {
	return &WAVConcatenator{}
}

func (w *WAVConcatenator) Concat(ctx context.Context, req ConcatRequest) error {
	wavDataList := make([][]byte, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("WAVファイルの読み込みに失敗しました (%s): %w", in, err)
		}
		wavDataList = append(wavDataList, data)
	}

	combined, err := CombineWavData(wavDataList)
	if err != nil {
		return err
	}

	if err := os.WriteFile(req.Output, combined, 0644); err != nil {
		return fmt.Errorf("結合したWAVファイルの書き込みに失敗しました (%s): %w", req.Output, err)
	}
	return nil
}

// CombineWavData は複数のWAVデータ（バイトスライス）を結合し、
// 正しいヘッダーを持つ単一のWAVファイル（バイトスライス）を生成します。
// 最初のWAVファイルからフォーマット情報（サンプリングレート、チャンネル数など）を引き継ぎます。
func CombineWavData(wavDataList [][]byte) ([]byte, error) {
	if len(wavDataList) == 0 {
		return nil, &ErrInvalidWAVHeader{Index: -1, Details: "結合するWAVデータがありません"}
	}

	// 1. 最初のWAVからフォーマット情報を抽出
	fmtChunk, firstAudio, err := extractAudioData(wavDataList[0], 0)
	if err != nil {
		return nil, err
	}

	// 2. すべてのオーディオデータを連結
	var audioDataWriter bytes.Buffer
	audioDataWriter.Write(firstAudio)

	for i := 1; i < len(wavDataList); i++ {
		currentFmt, currentAudio, err := extractAudioData(wavDataList[i], i)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(currentFmt, fmtChunk) {
			return nil, &ErrInvalidWAVHeader{Index: i, Details: "fmt チャンクが最初のファイルと一致しません"}
		}
		audioDataWriter.Write(currentAudio)
	}

	// 3. 結合されたデータと最初のフォーマットから新しいWAVファイルを構築
	return buildCombinedWav(fmtChunk, audioDataWriter.Bytes()), nil
}

// ----------------------------------------------------------------------
// 内部ヘルパー関数
// ----------------------------------------------------------------------

// extractAudioData はWAVファイルから fmt チャンク (ヘッダー込み) とオーディオデータ部分を抽出します。
// LISTチャンクなどのメタデータはスキップし、fmt/data チャンクを動的に探します。
func extractAudioData(wavBytes []byte, index int) (fmtChunk []byte, audioData []byte, err error) {
	if len(wavBytes) < WavRiffHeaderSize {
		return nil, nil, &ErrInvalidWAVHeader{
			Index:   index,
			Details: fmt.Sprintf("WAVファイルサイズが短すぎます (RIFFヘッダー不足: %dバイト)", len(wavBytes)),
		}
	}
	if string(wavBytes[0:RiffChunkIDSize]) != "RIFF" || string(wavBytes[RiffChunkIDSize+RiffChunkSizeSize:WavRiffHeaderSize]) != "WAVE" {
		return nil, nil, &ErrInvalidWAVHeader{Index: index, Details: "RIFF/WAVE 識別子がありません"}
	}

	offset := WavRiffHeaderSize
	for offset+ChunkHeaderSize <= len(wavBytes) {
		chunkID := string(wavBytes[offset : offset+ChunkIDSize])
		chunkSize := binary.LittleEndian.Uint32(wavBytes[offset+ChunkIDSize : offset+ChunkHeaderSize])
		bodyStart := offset + ChunkHeaderSize

		switch chunkID {
		case "fmt ":
			bodyEnd := bodyStart + int(chunkSize)
			if bodyEnd > len(wavBytes) {
				return nil, nil, &ErrInvalidWAVHeader{Index: index, Details: "fmtチャンクがファイルサイズを超過しています"}
			}
			fmtChunk = wavBytes[offset:bodyEnd]

		case "data":
			if fmtChunk == nil {
				return nil, nil, &ErrInvalidWAVHeader{Index: index, Details: "dataチャンクより前に fmt チャンクがありません"}
			}
			// ストリーミング出力ではサイズ欄が未確定値のため、ファイル末尾までをデータとみなす
			bodyEnd := len(wavBytes)
			if chunkSize != unknownChunkSize {
				bodyEnd = bodyStart + int(chunkSize)
				if bodyEnd > len(wavBytes) {
					return nil, nil, &ErrInvalidWAVHeader{
						Index:   index,
						Details: "dataチャンクのデータ長がファイルサイズを超過しています",
					}
				}
			}
			return fmtChunk, wavBytes[bodyStart:bodyEnd], nil
		}

		// 次のチャンクへ (奇数長のチャンクはパディング1バイト)
		offset = bodyStart + int(chunkSize)
		if chunkSize%2 != 0 {
			offset++
		}
	}

	return nil, nil, &ErrInvalidWAVHeader{
		Index:   index,
		Details: "WAVファイル内に 'data' チャンクが見つかりませんでした",
	}
}

// buildCombinedWav は fmt チャンクと結合されたオーディオデータから、
// 正しいヘッダーを持つ単一のWAVファイルを構築します。
// 奇数長のチャンクの後ろには RIFF の規約どおりパディング1バイトを置きます。
func buildCombinedWav(fmtChunk, audioData []byte) []byte {
	fmtPad := len(fmtChunk) % 2
	dataPad := len(audioData) % 2
	totalSize := WavRiffHeaderSize + len(fmtChunk) + fmtPad + ChunkHeaderSize + len(audioData) + dataPad

	var buf bytes.Buffer
	buf.Grow(totalSize)

	// RIFF ヘッダー (サイズは ファイル全体 - 8)
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(totalSize-RiffChunkIDSize-RiffChunkSizeSize))
	buf.WriteString("WAVE")

	buf.Write(fmtChunk)
	if fmtPad != 0 {
		buf.WriteByte(0)
	}

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(audioData)))
	buf.Write(audioData)
	if dataPad != 0 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}
