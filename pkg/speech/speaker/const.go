package speaker

import "github.com/sashabaranov/go-openai"

// ----------------------------------------------------------------------
// モデル・ボイス・フォーマット定義
// ----------------------------------------------------------------------

const (
	DefaultModel  = string(openai.TTSModel1HD)
	DefaultVoice  = string(openai.VoiceFable)
	DefaultFormat = string(openai.SpeechResponseFormatFlac)
)

// SupportedModels は、このツールがサポートする音声合成モデルの一覧です。
var SupportedModels = []Mapping{
	{APIName: string(openai.TTSModel1HD), Description: "高音質"},
	{APIName: string(openai.TTSModel1), Description: "低遅延"},
}

// SupportedVoices は、このツールがサポートするボイスの一覧です。
var SupportedVoices = []Mapping{
	{APIName: string(openai.VoiceAlloy), Description: "中性的"},
	{APIName: string(openai.VoiceEcho), Description: "男性"},
	{APIName: string(openai.VoiceFable), Description: "英国アクセント"},
	{APIName: string(openai.VoiceOnyx), Description: "低めの男性"},
	{APIName: string(openai.VoiceNova), Description: "女性"},
	{APIName: string(openai.VoiceShimmer), Description: "柔らかい女性"},
}

// SupportedFormats は、ffmpeg の -c copy で無劣化結合できる応答フォーマットです。
var SupportedFormats = []Mapping{
	{APIName: string(openai.SpeechResponseFormatFlac), Description: "可逆圧縮"},
	{APIName: string(openai.SpeechResponseFormatMp3), Description: "MP3"},
	{APIName: string(openai.SpeechResponseFormatWav), Description: "非圧縮 (ffmpeg 不要の結合に対応)"},
	{APIName: string(openai.SpeechResponseFormatOpus), Description: "Opus"},
	{APIName: string(openai.SpeechResponseFormatAac), Description: "AAC"},
}
