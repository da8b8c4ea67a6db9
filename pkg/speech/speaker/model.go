package speaker

import "strings"

// ----------------------------------------------------------------------
// 構造体定義
// ----------------------------------------------------------------------

// Mapping は、API に渡す識別子と CLI 表示用の説明のペアです。
type Mapping struct {
	APIName     string // 例: "fable"
	Description string
}

// Names は一覧の API 名だけを順番どおりに返します。
func Names(list []Mapping) []string {
	names := make([]string, 0, len(list))
	for _, m := range list {
		names = append(names, m.APIName)
	}
	return names
}

func contains(list []Mapping, name string) bool {
	for _, m := range list {
		if m.APIName == name {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------
// 検証
// ----------------------------------------------------------------------

// ValidateModel はモデル名がサポート対象か確認します。
func ValidateModel(name string) error {
	if !contains(SupportedModels, name) {
		return &ErrUnsupported{Kind: "model", Value: name, Allowed: strings.Join(Names(SupportedModels), ", ")}
	}
	return nil
}

// ValidateVoice はボイス名がサポート対象か確認します。
func ValidateVoice(name string) error {
	if !contains(SupportedVoices, name) {
		return &ErrUnsupported{Kind: "voice", Value: name, Allowed: strings.Join(Names(SupportedVoices), ", ")}
	}
	return nil
}

// ValidateFormat は応答フォーマットがサポート対象か確認します。
func ValidateFormat(name string) error {
	if !contains(SupportedFormats, name) {
		return &ErrUnsupported{Kind: "format", Value: name, Allowed: strings.Join(Names(SupportedFormats), ", ")}
	}
	return nil
}
