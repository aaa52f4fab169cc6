// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action 键盘动作
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionDrop
	ActionRestart
	ActionToggleMute
	ActionToggleFullscreen
	ActionVolumeDown
	ActionVolumeUp
	ActionStepTick
	ActionResumeFrames
)

// String 返回动作名称
func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionDrop:
		return "drop"
	case ActionRestart:
		return "restart"
	case ActionToggleMute:
		return "toggle-mute"
	case ActionToggleFullscreen:
		return "toggle-fullscreen"
	case ActionVolumeDown:
		return "volume-down"
	case ActionVolumeUp:
		return "volume-up"
	case ActionStepTick:
		return "step-tick"
	case ActionResumeFrames:
		return "resume-frames"
	default:
		return "none"
	}
}

// DefaultKeyBindings 默认按键映射
var DefaultKeyBindings = map[ebiten.Key]Action{
	ebiten.KeyArrowLeft:  ActionMoveLeft,
	ebiten.KeyA:          ActionMoveLeft,
	ebiten.KeyArrowRight: ActionMoveRight,
	ebiten.KeyD:          ActionMoveRight,
	ebiten.KeySpace:      ActionDrop,
	ebiten.KeyEnter:      ActionDrop,
	ebiten.KeyR:          ActionRestart,
	ebiten.KeyM:          ActionToggleMute,
	ebiten.KeyF11:        ActionToggleFullscreen,
	ebiten.KeyMinus:      ActionVolumeDown,
	ebiten.KeyEqual:      ActionVolumeUp,
	ebiten.KeyPeriod:     ActionStepTick,
	ebiten.KeyP:          ActionResumeFrames,
}

// ActionsForKeys 把本帧按下的键映射为动作
//
// 未绑定的键被忽略；同一动作只出现一次，顺序与按键顺序一致
func ActionsForKeys(keys []ebiten.Key, bindings map[ebiten.Key]Action) []Action {
	var actions []Action
	seen := make(map[Action]bool, len(keys))
	for _, key := range keys {
		action, ok := bindings[key]
		if !ok || action == ActionNone || seen[action] {
			continue
		}
		seen[action] = true
		actions = append(actions, action)
	}
	return actions
}

// PointerFrame 本帧的指针输入
type PointerFrame struct {
	X, Y        int  // 指针位置（逻辑坐标）
	Moved       bool // 位置相对上一帧发生变化
	JustPressed bool // 鼠标左键或触摸刚刚按下
	HasPointer  bool // 有鼠标或活动触摸
}

// PointerTracker 跟踪鼠标与触摸指针
// 优先使用触摸输入，没有触摸时使用鼠标
type PointerTracker struct {
	lastX, lastY int
	hasLast      bool
}

// Update 读取本帧指针状态（每帧调用一次）
func (pt *PointerTracker) Update() PointerFrame {
	// 首先检查触摸输入（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pt.observe(x, y, true)
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pt.observe(x, y, false)
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return pt.observe(x, y, inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
}

// observe 记录一次指针采样，返回本帧状态
func (pt *PointerTracker) observe(x, y int, pressed bool) PointerFrame {
	frame := PointerFrame{
		X:           x,
		Y:           y,
		JustPressed: pressed,
		HasPointer:  true,
		Moved:       !pt.hasLast || x != pt.lastX || y != pt.lastY,
	}
	pt.lastX, pt.lastY = x, y
	pt.hasLast = true
	return frame
}

// Reset 忘记上一次指针位置
func (pt *PointerTracker) Reset() {
	*pt = PointerTracker{}
}

// InsideRect 判断点是否在矩形内（含左上边界，不含右下边界）
func InsideRect(x, y int, left, top, width, height float64) bool {
	fx, fy := float64(x), float64(y)
	return fx >= left && fx < left+width && fy >= top && fy < top+height
}

// JustPressedKeys 返回本帧刚按下的键
func JustPressedKeys() []ebiten.Key {
	return inpututil.AppendJustPressedKeys(nil)
}
