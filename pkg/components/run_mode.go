package components

import "fmt"

// RunMode 一局游戏的状态
//
// 只会从 Playing 变为 Loss 或 Win，直到显式重置。
type RunMode int

const (
	RunModePlaying RunMode = iota
	RunModeLoss
	RunModeWin
)

// String 返回状态名称
func (m RunMode) String() string {
	switch m {
	case RunModePlaying:
		return "playing"
	case RunModeLoss:
		return "loss"
	case RunModeWin:
		return "win"
	default:
		return "unknown"
	}
}

// MarshalText 以名称序列化（用于快照输出）
func (m RunMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 从名称解析（读取快照时使用）
func (m *RunMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*m = RunModePlaying
	case "loss":
		*m = RunModeLoss
	case "win":
		*m = RunModeWin
	default:
		return fmt.Errorf("unknown run mode %q", text)
	}
	return nil
}

// EndReason 一局结束的原因
type EndReason string

const (
	EndReasonNone          EndReason = ""
	EndReasonTopLine       EndReason = "top-line"      // 水果越过警戒线
	EndReasonTerminalTouch EndReason = "pumpkin-touch" // 两个终极水果接触
)

// Outcome 返回结束原因对应的状态
func (r EndReason) Outcome() RunMode {
	switch r {
	case EndReasonTerminalTouch:
		return RunModeWin
	case EndReasonTopLine:
		return RunModeLoss
	default:
		return RunModePlaying
	}
}
