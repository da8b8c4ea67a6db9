package speaker

import "fmt"

// ErrUnsupported は CLI や設定で指定された値がサポート対象外であることを示します。
type ErrUnsupported struct {
	Kind    string // 例: "voice"
	Value   string
	Allowed string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("サポートされていない %s です: %q (指定可能: %s)", e.Kind, e.Value, e.Allowed)
}
